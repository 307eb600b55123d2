package controller

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	competitionModel "competition_portal_backend/internals/features/competitions/model"
	"competition_portal_backend/internals/features/registrations/model"
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
		&model.RegistrationModel{},
	))
	return db
}

func newTestApp(db *gorm.DB, blob storage.BlobService, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctrl := NewRegistrationController(db, blob)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, userID.String())
		c.Locals(helper.LocUserRole, "user")
		return c.Next()
	})
	app.Post("/registrations/:id/materials", ctrl.UploadMaterials)
	return app
}

func seedRegistration(t *testing.T, db *gorm.DB) (*userModel.UserModel, *model.RegistrationModel) {
	t.Helper()
	user := userModel.UserModel{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	competition := competitionModel.CompetitionModel{
		Title:             "Essay Contest",
		StartTime:         now.Add(48 * time.Hour),
		EndTime:           now.Add(72 * time.Hour),
		RegistrationStart: now.Add(-24 * time.Hour),
		RegistrationEnd:   now.Add(24 * time.Hour),
		Status:            competitionModel.StatusOpen,
		CreatedBy:         user.ID,
	}
	require.NoError(t, db.Create(&competition).Error)

	registration := model.RegistrationModel{UserID: user.ID, CompetitionID: competition.ID}
	require.NoError(t, db.Create(&registration).Error)
	return &user, &registration
}

func addFilePart(t *testing.T, w *multipart.Writer, filename, mime string, content []byte) {
	t.Helper()
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="files"; filename="`+filename+`"`)
	h.Set("Content-Type", mime)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
}

func TestUploadMaterials(t *testing.T) {
	db := newTestDB(t)
	blob := storage.NewLocalStorage(t.TempDir())
	user, registration := seedRegistration(t, db)
	app := newTestApp(db, blob, user.ID)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	addFilePart(t, w, "essay.pdf", "application/pdf", []byte("pdf-bytes"))
	addFilePart(t, w, "slides.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", []byte("pptx-bytes"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/registrations/"+registration.ID.String()+"/materials", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded model.RegistrationModel
	require.NoError(t, db.First(&reloaded, "id = ?", registration.ID).Error)
	attachments := reloaded.AttachmentList()
	require.Len(t, attachments, 2)
	require.Equal(t, "essay.pdf", attachments[0].OriginalName)

	// Stored file exists under the materials tree.
	diskPath, ok := blob.ResolvePublicURL(attachments[0].URL)
	require.True(t, ok)
	raw, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	require.Equal(t, []byte("pdf-bytes"), raw)
}

func TestUploadMaterialsPartialBatch(t *testing.T) {
	db := newTestDB(t)
	blob := storage.NewLocalStorage(t.TempDir())
	user, registration := seedRegistration(t, db)
	app := newTestApp(db, blob, user.ID)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	addFilePart(t, w, "essay.pdf", "application/pdf", []byte("pdf-bytes"))
	addFilePart(t, w, "malware.exe", "application/octet-stream", []byte("nope"))
	addFilePart(t, w, "extra.pdf", "application/pdf", []byte("more"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/registrations/"+registration.ID.String()+"/materials", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The valid file accepted before the rejection stays persisted; the file
	// after it was never reached.
	var reloaded model.RegistrationModel
	require.NoError(t, db.First(&reloaded, "id = ?", registration.ID).Error)
	attachments := reloaded.AttachmentList()
	require.Len(t, attachments, 1)
	require.Equal(t, "essay.pdf", attachments[0].OriginalName)

	// No temp leftovers for the rejected file.
	entries, err := os.ReadDir(filepath.Join(blob.Root, "tmp", user.ID.String()))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestUploadMaterialsOwnership(t *testing.T) {
	db := newTestDB(t)
	blob := storage.NewLocalStorage(t.TempDir())
	_, registration := seedRegistration(t, db)
	app := newTestApp(db, blob, uuid.New())

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	addFilePart(t, w, "essay.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/registrations/"+registration.ID.String()+"/materials", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
