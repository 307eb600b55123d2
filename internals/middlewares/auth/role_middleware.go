package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "competition_portal_backend/internals/helpers"
)

// OnlyRoles allows the request through when the authenticated user holds one
// of the given roles. Must run after AuthMiddleware.
func OnlyRoles(message string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Role not found in context")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}
