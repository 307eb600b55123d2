package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	awardModel "competition_portal_backend/internals/features/awards/model"
	notificationModel "competition_portal_backend/internals/features/notifications/model"
	helper "competition_portal_backend/internals/helpers"
)

const certificateInsertAttempts = 5

type IssueCertificateInput struct {
	UserID           uuid.UUID
	CompetitionID    *uuid.UUID
	AwardName        string
	AwardRank        *string
	AwardTime        time.Time
	CertificateImage string
	Description      *string
	IssuedBy         uuid.UUID
}

// IssueCollegeCertificate creates a pre-approved college-level award with a
// generated certificate number. The number carries the issue date plus a
// random 4-digit suffix; the unique index arbitrates collisions and the
// insert retries with a fresh suffix.
func (s *ReviewService) IssueCollegeCertificate(in IssueCertificateInput) (*awardModel.AwardModel, error) {
	var award awardModel.AwardModel
	var lastErr error

	for attempt := 0; attempt < certificateInsertAttempts; attempt++ {
		number := generateCertificateNumber(time.Now())
		award = awardModel.AwardModel{
			UserID:            in.UserID,
			CompetitionID:     in.CompetitionID,
			AwardLevel:        awardModel.LevelCollege,
			AwardName:         in.AwardName,
			AwardRank:         in.AwardRank,
			AwardTime:         in.AwardTime,
			CertificateImage:  in.CertificateImage,
			CertificateNumber: &number,
			Description:       in.Description,
			Status:            awardModel.StatusApproved,
			IssuedBy:          &in.IssuedBy,
		}

		err := s.DB.Create(&award).Error
		if err == nil {
			lastErr = nil
			break
		}
		if !helper.IsUniqueViolation(err) {
			return nil, err
		}
		award.ID = uuid.Nil
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}

	s.Notifications.NotifyBestEffort(in.UserID, notificationModel.TypeCertificateIssued,
		"College award certificate",
		"You have been issued a college award certificate: "+in.AwardName)

	if err := s.DB.Preload("User").Preload("Competition").First(&award, "id = ?", award.ID).Error; err != nil {
		return nil, err
	}
	return &award, nil
}

func generateCertificateNumber(now time.Time) string {
	return fmt.Sprintf("COLLEGE-%s-%04d", now.UTC().Format("20060102"), rand.Intn(10000))
}
