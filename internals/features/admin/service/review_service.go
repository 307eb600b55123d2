package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	awardModel "competition_portal_backend/internals/features/awards/model"
	competitionModel "competition_portal_backend/internals/features/competitions/model"
	notificationModel "competition_portal_backend/internals/features/notifications/model"
	notificationService "competition_portal_backend/internals/features/notifications/service"
	registrationModel "competition_portal_backend/internals/features/registrations/model"
	helper "competition_portal_backend/internals/helpers"
)

// ReviewService is the shared approve/reject engine for registrations and
// awards. The authoritative write happens first; the notification to the
// submission's owner is dispatched best effort afterwards.
type ReviewService struct {
	DB            *gorm.DB
	Notifications *notificationService.NotificationService
}

func NewReviewService(db *gorm.DB, notifications *notificationService.NotificationService) *ReviewService {
	return &ReviewService{DB: db, Notifications: notifications}
}

func decisionValid(status string) bool {
	return status == registrationModel.StatusApproved || status == registrationModel.StatusRejected
}

func decisionWord(status string) string {
	if status == registrationModel.StatusApproved {
		return "approved"
	}
	return "rejected"
}

// lockCompetitionForUpdate adds FOR UPDATE on dialects that support it, so
// concurrent approvals serialize on the competition row before counting.
// sqlite cannot parse the clause; its single-writer model serializes anyway.
func lockCompetitionForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ReviewRegistration applies the decision and, on approval, increments the
// competition's participant counter. Decision write and counter increment
// share one transaction; the capacity check counts under a competition row
// lock and the increment is a single atomic UPDATE, so concurrent approvals
// can neither overshoot the limit nor lose counts.
func (s *ReviewService) ReviewRegistration(id, reviewerID uuid.UUID, status string, notes *string) (*registrationModel.RegistrationModel, error) {
	if !decisionValid(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid review status")
	}

	var registration registrationModel.RegistrationModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Competition").First(&registration, "id = ?", id).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Registration not found")
			}
			return err
		}
		if registration.Status != registrationModel.StatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Registration has already been reviewed")
		}

		if status == registrationModel.StatusApproved {
			var competition competitionModel.CompetitionModel
			if err := lockCompetitionForUpdate(tx).
				First(&competition, "id = ?", registration.CompetitionID).Error; err != nil {
				return err
			}
			if competition.MaxParticipants > 0 {
				var approved int64
				if err := tx.Model(&registrationModel.RegistrationModel{}).
					Where("competition_id = ? AND status = ?", registration.CompetitionID, registrationModel.StatusApproved).
					Count(&approved).Error; err != nil {
					return err
				}
				if approved >= int64(competition.MaxParticipants) {
					return fiber.NewError(fiber.StatusBadRequest, "Competition is full")
				}
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":       status,
			"reviewed_by":  reviewerID,
			"reviewed_at":  now,
			"review_notes": notes,
		}
		if err := tx.Model(&registration).Updates(updates).Error; err != nil {
			return err
		}

		if status == registrationModel.StatusApproved {
			if err := tx.Model(&competitionModel.CompetitionModel{}).
				Where("id = ?", registration.CompetitionID).
				Update("current_participants", gorm.Expr("current_participants + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	title := "Registration review result"
	content := "Your registration was " + decisionWord(status)
	if registration.Competition != nil {
		content = "Your registration for \"" + registration.Competition.Title + "\" was " + decisionWord(status)
	}
	s.Notifications.NotifyBestEffort(registration.UserID, notificationModel.TypeRegistrationReview, title, content)

	return &registration, nil
}

// ReviewAward applies the decision to a self-submitted award. College-level
// awards never enter the reviewable set.
func (s *ReviewService) ReviewAward(id, reviewerID uuid.UUID, status string, notes *string) (*awardModel.AwardModel, error) {
	if !decisionValid(status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid review status")
	}

	var award awardModel.AwardModel
	if err := s.DB.First(&award, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Award not found")
		}
		return nil, err
	}

	if award.AwardLevel == awardModel.LevelCollege {
		return nil, fiber.NewError(fiber.StatusBadRequest, "College certificates are not reviewable")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       status,
		"reviewed_by":  reviewerID,
		"reviewed_at":  now,
		"review_notes": notes,
	}
	if err := s.DB.Model(&award).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.Notifications.NotifyBestEffort(award.UserID, notificationModel.TypeAwardReview,
		"Award review result",
		"Your award \""+award.AwardName+"\" was "+decisionWord(status))

	return &award, nil
}
