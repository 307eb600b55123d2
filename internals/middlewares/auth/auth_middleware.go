package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token and re-checks the account against
// the database on every request, so a disabled user loses access immediately
// even with a live token.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := helper.ExtractBearerToken(c)
		if err != nil {
			return err
		}

		claims, err := helper.ParseToken(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		var user userModel.UserModel
		if err := db.Select("id", "role", "status").First(&user, "id = ?", claims.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "User not found")
			}
			log.Println("[ERROR] auth middleware user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsActive() {
			return fiber.NewError(fiber.StatusForbidden, "Your account has been disabled")
		}

		c.Locals(helper.LocUserID, claims.ID.String())
		c.Locals(helper.LocUserName, claims.Username)
		c.Locals(helper.LocUserMail, claims.Email)
		// Role comes from the DB, not the token, so role changes apply
		// without re-login.
		c.Locals(helper.LocUserRole, user.Role)
		return c.Next()
	}
}
