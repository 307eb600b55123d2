package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"competition_portal_backend/internals/configs"
)

// ErrorHandler is the single boundary translating errors into the JSON
// envelope. Domain failures travel as *fiber.Error; anything else is logged
// and suppressed to a generic 500 outside development.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] unhandled: %s %s: %v", c.Method(), c.OriginalURL(), err)
	if configs.IsDevelopment() {
		return JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
