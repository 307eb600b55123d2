package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	competitionModel "competition_portal_backend/internals/features/competitions/model"
	"competition_portal_backend/internals/features/registrations/model"
	helper "competition_portal_backend/internals/helpers"
)

// CreateRegistration applies the registration-window, duplicate and capacity
// rules and stores a pending registration. The (user, competition) unique
// index closes the race between concurrent duplicate attempts; the explicit
// existence check only improves the error message on the common path.
func CreateRegistration(db *gorm.DB, userID, competitionID uuid.UUID, data datatypes.JSON) (*model.RegistrationModel, error) {
	var competition competitionModel.CompetitionModel
	if err := db.First(&competition, "id = ?", competitionID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Competition not found")
		}
		return nil, err
	}

	if !competition.RegistrationOpenAt(time.Now()) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Registration window is closed")
	}

	var existing model.RegistrationModel
	err := db.Where("user_id = ? AND competition_id = ?", userID, competitionID).First(&existing).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "You have already registered for this competition")
	}
	if !helper.IsNotFound(err) {
		return nil, err
	}

	if competition.MaxParticipants > 0 {
		var approved int64
		if err := db.Model(&model.RegistrationModel{}).
			Where("competition_id = ? AND status = ?", competitionID, model.StatusApproved).
			Count(&approved).Error; err != nil {
			return nil, err
		}
		if approved >= int64(competition.MaxParticipants) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Competition is full")
		}
	}

	registration := model.RegistrationModel{
		UserID:           userID,
		CompetitionID:    competitionID,
		RegistrationData: data,
		Status:           model.StatusPending,
	}
	if err := db.Create(&registration).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "You have already registered for this competition")
		}
		return nil, err
	}

	if err := db.Preload("Competition").First(&registration, "id = ?", registration.ID).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// CancelRegistration is the user-initiated transition to cancelled. It is
// deliberately unconditional apart from the already-cancelled guard; an
// approved registration can still be cancelled, and the competition's audit
// counter is not decremented by design.
func CancelRegistration(db *gorm.DB, id, userID uuid.UUID) error {
	var registration model.RegistrationModel
	if err := db.First(&registration, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Registration not found")
		}
		return err
	}

	if registration.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your registration")
	}
	if registration.Status == model.StatusCancelled {
		return fiber.NewError(fiber.StatusBadRequest, "Registration is already cancelled")
	}

	return db.Model(&registration).Update("status", model.StatusCancelled).Error
}
