package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/notifications/controller"
	"competition_portal_backend/internals/features/notifications/realtime"
	helper "competition_portal_backend/internals/helpers"
	authMiddleware "competition_portal_backend/internals/middlewares/auth"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := controller.NewNotificationController(db)

	notifications := api.Group("/notifications", authMiddleware.AuthMiddleware(db))
	notifications.Get("/", ctrl.List)
	notifications.Put("/read-all", ctrl.MarkAllAsRead)
	notifications.Put("/:id/read", ctrl.MarkAsRead)

	// Realtime channel. The auth middleware runs before the upgrade, so
	// membership is bound to the verified token identity, not a
	// client-supplied id.
	notifications.Get("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		userID, err := helper.GetUserID(c)
		if err != nil {
			return err
		}
		c.Locals("ws_user_id", userID)
		return c.Next()
	}, websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			_ = conn.Close()
			return
		}
		hub.Serve(userID, conn)
	}))
}
