package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminRoute "competition_portal_backend/internals/features/admin/route"
	awardRoute "competition_portal_backend/internals/features/awards/route"
	competitionRoute "competition_portal_backend/internals/features/competitions/route"
	notificationRoute "competition_portal_backend/internals/features/notifications/route"
	"competition_portal_backend/internals/features/notifications/realtime"
	notificationService "competition_portal_backend/internals/features/notifications/service"
	registrationRoute "competition_portal_backend/internals/features/registrations/route"
	authRoute "competition_portal_backend/internals/features/users/auth/route"
	userRoute "competition_portal_backend/internals/features/users/user/route"
	"competition_portal_backend/internals/helpers/storage"
)

// SetupRoutes mounts every feature group under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub, blob storage.BlobService) {
	BaseRoutes(app, db)

	notifications := notificationService.NewNotificationService(db, hub)

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(api, db, blob)

	log.Println("[INFO] Setting up CompetitionRoutes...")
	competitionRoute.CompetitionRoutes(api, db, blob)

	log.Println("[INFO] Setting up RegistrationRoutes...")
	registrationRoute.RegistrationRoutes(api, db, blob)

	log.Println("[INFO] Setting up AwardRoutes...")
	awardRoute.AwardRoutes(api, db, blob)

	log.Println("[INFO] Setting up NotificationRoutes...")
	notificationRoute.NotificationRoutes(api, db, hub)

	log.Println("[INFO] Setting up AdminRoutes...")
	adminRoute.AdminRoutes(api, db, notifications, blob)
}
