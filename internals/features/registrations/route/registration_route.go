package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/registrations/controller"
	"competition_portal_backend/internals/helpers/storage"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func RegistrationRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctrl := controller.NewRegistrationController(db, blob)

	registrations := api.Group("/registrations", authMiddleware.AuthMiddleware(db))
	registrations.Post("/", ctrl.Create)
	registrations.Get("/my", ctrl.ListMine)
	registrations.Get("/:id", ctrl.GetByID)
	registrations.Delete("/:id", ctrl.Cancel)
	registrations.Post("/:id/materials", ctrl.UploadMaterials)
}
