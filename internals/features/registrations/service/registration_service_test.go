package service

import (
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

func seedUser(t *testing.T, db *gorm.DB, username string) *userModel.UserModel {
	t.Helper()
	user := userModel.UserModel{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCompetition(t *testing.T, db *gorm.DB, creator uuid.UUID, maxParticipants int) *competitionModel.CompetitionModel {
	t.Helper()
	now := time.Now()
	competition := competitionModel.CompetitionModel{
		Title:             "Programming Contest",
		Type:              "programming",
		StartTime:         now.Add(48 * time.Hour),
		EndTime:           now.Add(72 * time.Hour),
		RegistrationStart: now.Add(-24 * time.Hour),
		RegistrationEnd:   now.Add(24 * time.Hour),
		MaxParticipants:   maxParticipants,
		Status:            competitionModel.StatusOpen,
		CreatedBy:         creator,
	}
	require.NoError(t, db.Create(&competition).Error)
	return &competition
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateRegistration(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "alice")
	competition := seedCompetition(t, db, admin.ID, 0)

	registration, err := CreateRegistration(db, user.ID, competition.ID, nil)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, registration.Status)
	require.NotNil(t, registration.Competition)
	require.Equal(t, competition.ID, registration.Competition.ID)
}

func TestCreateRegistrationUnknownCompetition(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")

	_, err := CreateRegistration(db, user.ID, uuid.New(), nil)
	require.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}

func TestCreateRegistrationDuplicate(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "alice")
	competition := seedCompetition(t, db, admin.ID, 0)

	_, err := CreateRegistration(db, user.ID, competition.ID, nil)
	require.NoError(t, err)

	_, err = CreateRegistration(db, user.ID, competition.ID, nil)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))

	var count int64
	require.NoError(t, db.Model(&model.RegistrationModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreateRegistrationWindowClosed(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "alice")

	competition := seedCompetition(t, db, admin.ID, 0)
	require.NoError(t, db.Model(competition).Updates(map[string]interface{}{
		"registration_start": time.Now().Add(-48 * time.Hour),
		"registration_end":   time.Now().Add(-24 * time.Hour),
	}).Error)

	_, err := CreateRegistration(db, user.ID, competition.ID, nil)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestCreateRegistrationCapacity(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	competition := seedCompetition(t, db, admin.ID, 1)

	first := seedUser(t, db, "alice")
	registration, err := CreateRegistration(db, first.ID, competition.ID, nil)
	require.NoError(t, err)

	// Pending registrations do not consume capacity.
	second := seedUser(t, db, "bob")
	_, err = CreateRegistration(db, second.ID, competition.ID, nil)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.RegistrationModel{}).
		Where("id = ?", registration.ID).
		Update("status", model.StatusApproved).Error)

	third := seedUser(t, db, "carol")
	_, err = CreateRegistration(db, third.ID, competition.ID, nil)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestCreateRegistrationUnlimitedCapacity(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	competition := seedCompetition(t, db, admin.ID, 0)

	for i, name := range []string{"alice", "bob", "carol"} {
		user := seedUser(t, db, name)
		registration, err := CreateRegistration(db, user.ID, competition.ID, nil)
		require.NoError(t, err, "registrant %d", i)
		require.NoError(t, db.Model(&model.RegistrationModel{}).
			Where("id = ?", registration.ID).
			Update("status", model.StatusApproved).Error)
	}
}

func TestCancelRegistration(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "alice")
	competition := seedCompetition(t, db, admin.ID, 0)

	registration, err := CreateRegistration(db, user.ID, competition.ID, nil)
	require.NoError(t, err)

	require.NoError(t, CancelRegistration(db, registration.ID, user.ID))

	var reloaded model.RegistrationModel
	require.NoError(t, db.First(&reloaded, "id = ?", registration.ID).Error)
	require.Equal(t, model.StatusCancelled, reloaded.Status)

	err = CancelRegistration(db, registration.ID, user.ID)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestCancelRegistrationOwnership(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin")
	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	competition := seedCompetition(t, db, admin.ID, 0)

	registration, err := CreateRegistration(db, user.ID, competition.ID, nil)
	require.NoError(t, err)

	err = CancelRegistration(db, registration.ID, other.ID)
	require.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))

	err = CancelRegistration(db, uuid.New(), user.ID)
	require.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}
