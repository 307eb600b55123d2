package controller

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"competition_portal_backend/internals/features/awards/model"
	competitionModel "competition_portal_backend/internals/features/competitions/model"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
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

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&competitionModel.CompetitionModel{},
		&model.AwardModel{},
	))
	return db
}

func newTestApp(db *gorm.DB, blob storage.BlobService, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctrl := NewAwardController(db, blob)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocUserRole, "user")
		return c.Next()
	})
	app.Post("/awards", ctrl.Create)
	app.Put("/awards/:id", ctrl.Update)
	return app
}

func seedUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func certificateForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="certificate"; filename="certificate.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("pdf-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func awardsOnDisk(t *testing.T, root string) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, "awards"))
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestCreateAwardFromUpload(t *testing.T) {
	db := newTestDB(t)
	root := t.TempDir()
	user := seedUser(t, db)
	app := newTestApp(db, storage.NewLocalStorage(root), user.ID)

	body, contentType := certificateForm(t, map[string]string{
		"award_level": model.LevelSchool,
		"award_name":  "Best Essay",
		"award_time":  time.Now().UTC().Format("2006-01-02"),
	})
	req := httptest.NewRequest("POST", "/awards", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var award model.AwardModel
	require.NoError(t, db.First(&award, "user_id = ?", user.ID).Error)
	require.Equal(t, model.StatusPending, award.Status)
	require.True(t, strings.HasSuffix(award.CertificateImage, ".pdf"))
	require.Equal(t, 1, awardsOnDisk(t, root))
}

func TestCreateAwardRejectsCollegeLevel(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	app := newTestApp(db, storage.NewLocalStorage(t.TempDir()), user.ID)

	payload := `{"award_level":"college","award_name":"Dean's List","award_time":"2026-01-10","certificate_image":"https://cdn.example.com/cert.png"}`
	req := httptest.NewRequest("POST", "/awards", strings.NewReader(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateAwardUnknownCompetitionLeavesNoFile(t *testing.T) {
	db := newTestDB(t)
	root := t.TempDir()
	user := seedUser(t, db)
	app := newTestApp(db, storage.NewLocalStorage(root), user.ID)

	body, contentType := certificateForm(t, map[string]string{
		"award_level":    model.LevelSchool,
		"award_name":     "Best Essay",
		"award_time":     "2026-01-10",
		"competition_id": uuid.NewString(),
	})
	req := httptest.NewRequest("POST", "/awards", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The rejected request must not leave an orphaned upload behind.
	require.Equal(t, 0, awardsOnDisk(t, root))

	var count int64
	require.NoError(t, db.Model(&model.AwardModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateAwardRejectsCollegeLevel(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	app := newTestApp(db, storage.NewLocalStorage(t.TempDir()), user.ID)

	award := model.AwardModel{
		UserID:           user.ID,
		AwardLevel:       model.LevelSchool,
		AwardName:        "Best Essay",
		AwardTime:        time.Now().UTC(),
		CertificateImage: "https://cdn.example.com/cert.png",
		Status:           model.StatusPending,
	}
	require.NoError(t, db.Create(&award).Error)

	req := httptest.NewRequest("PUT", "/awards/"+award.ID.String(), strings.NewReader(`{"award_level":"college"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var reloaded model.AwardModel
	require.NoError(t, db.First(&reloaded, "id = ?", award.ID).Error)
	require.Equal(t, model.LevelSchool, reloaded.AwardLevel)
}
