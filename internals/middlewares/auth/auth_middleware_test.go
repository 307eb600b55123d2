package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"competition_portal_backend/internals/configs"
	"competition_portal_backend/internals/constants"
	userModel "competition_portal_backend/internals/features/users/user/model"
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

	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))
	return db
}

func newAuthApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(AuthMiddleware(db))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": helper.GetUserRole(c)})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour
	db := newTestDB(t)

	user := userModel.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	token, err := helper.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	require.NoError(t, err)

	app := newAuthApp(db)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Missing token.
	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// A live token stops working the moment the account is disabled.
func TestAuthMiddlewareDisabledAccount(t *testing.T) {
	configs.JWTSecret = "test-secret"
	configs.AccessTokenTTL = time.Hour
	db := newTestDB(t)

	user := userModel.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	token, err := helper.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	require.NoError(t, err)

	require.NoError(t, db.Model(&user).Update("status", constants.UserStatusDisabled).Error)

	app := newAuthApp(db)
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
