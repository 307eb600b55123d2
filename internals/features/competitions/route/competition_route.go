package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	"competition_portal_backend/internals/features/competitions/controller"
	"competition_portal_backend/internals/helpers/storage"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func CompetitionRoutes(api fiber.Router, db *gorm.DB, blob storage.BlobService) {
	ctrl := controller.NewCompetitionController(db, blob)

	competitions := api.Group("/competitions")

	// Public catalog
	competitions.Get("/", ctrl.List)
	competitions.Get("/:id", ctrl.GetByID)

	// Administrator-only mutations
	adminOnly := []fiber.Handler{
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Only administrators can manage competitions", constants.AdminAndAbove...),
	}
	competitions.Post("/", append(adminOnly, ctrl.Create)...)
	competitions.Put("/:id", append(adminOnly, ctrl.Update)...)
	competitions.Delete("/:id", append(adminOnly, ctrl.Delete)...)
}
