package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	"competition_portal_backend/internals/features/admin/controller"
	"competition_portal_backend/internals/features/admin/service"
	notificationService "competition_portal_backend/internals/features/notifications/service"
	"competition_portal_backend/internals/helpers/storage"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func AdminRoutes(api fiber.Router, db *gorm.DB, notifications *notificationService.NotificationService, blob storage.BlobService) {
	ctrl := controller.NewAdminController(db, service.NewReviewService(db, notifications), blob)

	admin := api.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Administrator access required", constants.AdminAndAbove...),
	)

	admin.Get("/registrations/competition/:competitionId", ctrl.ListRegistrations)
	admin.Put("/registrations/:id/review", ctrl.ReviewRegistration)

	admin.Get("/awards", ctrl.ListAwards)
	admin.Put("/awards/:id/review", ctrl.ReviewAward)
	admin.Post("/awards/certificate", ctrl.IssueCertificate)

	admin.Get("/users", ctrl.ListUsers)
	admin.Put("/users/:id/role", ctrl.ChangeUserRole)
	admin.Put("/users/:id/status", ctrl.ChangeUserStatus)

	admin.Get("/statistics", ctrl.Statistics)

	admin.Get("/export/awards.xlsx", ctrl.ExportAwards)
	admin.Get("/export/registrations.xlsx", ctrl.ExportRegistrations)
	admin.Get("/export/competition/:competitionId/materials.zip", ctrl.ExportMaterials)
}
