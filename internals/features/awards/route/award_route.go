package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/awards/controller"
	"competition_portal_backend/internals/helpers/storage"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func AwardRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctrl := controller.NewAwardController(db, blob)

	awards := api.Group("/awards", authMiddleware.AuthMiddleware(db))
	awards.Post("/", ctrl.Create)
	awards.Get("/my", ctrl.ListMine)
	awards.Get("/:id", ctrl.GetByID)
	awards.Put("/:id", ctrl.Update)
	awards.Delete("/:id", ctrl.Delete)
}
