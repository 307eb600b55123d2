package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"competition_portal_backend/internals/features/notifications/model"
	helper "competition_portal_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory sqlite gives every pooled connection its own database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.NotificationModel{}))
	return db
}

// newTestApp mounts the controller behind a stub that injects the given user
// identity, standing in for the auth middleware.
func newTestApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctrl := NewNotificationController(db)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocUserRole, "user")
		return c.Next()
	})
	app.Put("/notifications/read-all", ctrl.MarkAllAsRead)
	app.Put("/notifications/:id/read", ctrl.MarkAsRead)
	return app
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID) *model.NotificationModel {
	t.Helper()
	notification := model.NotificationModel{
		UserID:  userID,
		Type:    model.TypeRegistrationReview,
		Title:   "Registration review result",
		Content: "Your registration was approved",
	}
	require.NoError(t, db.Create(&notification).Error)
	return &notification
}

func TestMarkAsReadIdempotent(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	app := newTestApp(db, userID)
	notification := seedNotification(t, db, userID)

	for range [2]struct{}{} {
		req := httptest.NewRequest("PUT", "/notifications/"+notification.ID.String()+"/read", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var reloaded model.NotificationModel
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	require.True(t, reloaded.IsRead)
}

func TestMarkAsReadOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := uuid.New()
	notification := seedNotification(t, db, owner)

	app := newTestApp(db, uuid.New())
	req := httptest.NewRequest("PUT", "/notifications/"+notification.ID.String()+"/read", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/notifications/"+uuid.NewString()+"/read", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	app := newTestApp(db, userID)

	seedNotification(t, db, userID)
	seedNotification(t, db, userID)
	other := seedNotification(t, db, uuid.New())

	req := httptest.NewRequest("PUT", "/notifications/read-all", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var unread int64
	require.NoError(t, db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error)
	require.EqualValues(t, 0, unread)

	var reloaded model.NotificationModel
	require.NoError(t, db.First(&reloaded, "id = ?", other.ID).Error)
	require.False(t, reloaded.IsRead, "other users' notifications stay unread")
}
