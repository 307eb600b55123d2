package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/users/user/controller"
	"competition_portal_backend/internals/helpers/storage"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctrl := controller.NewUserController(db, blob)

	users := api.Group("/users", authMiddleware.AuthMiddleware(db))
	users.Get("/profile", ctrl.GetProfile)
	users.Put("/profile", ctrl.UpdateProfile)
	users.Put("/password", ctrl.ChangePassword)
}
