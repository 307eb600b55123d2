package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	competitionModel "competition_portal_backend/internals/features/competitions/model"
	userModel "competition_portal_backend/internals/features/users/user/model"
)

const (
	LevelSchool     = "school"
	LevelProvincial = "provincial"
	LevelNational   = "national"
	LevelCollege    = "college"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// SelfSubmittableLevels are the levels a user may claim; college awards are
// only ever issued by an administrator and bypass review.
var SelfSubmittableLevels = []string{LevelSchool, LevelProvincial, LevelNational}

func IsSelfSubmittableLevel(level string) bool {
	for _, l := range SelfSubmittableLevels {
		if l == level {
			return true
		}
	}
	return false
}

type AwardModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CompetitionID *uuid.UUID `gorm:"type:uuid;index" json:"competition_id,omitempty"`

	AwardLevel string    `gorm:"type:varchar(20);not null" json:"award_level"`
	AwardName  string    `gorm:"size:255;not null" json:"award_name"`
	AwardRank  *string   `gorm:"size:50" json:"award_rank,omitempty"`
	AwardTime  time.Time `gorm:"not null" json:"award_time"`

	CertificateImage  string  `gorm:"size:512;not null" json:"certificate_image"`
	CertificateNumber *string `gorm:"size:64;uniqueIndex" json:"certificate_number,omitempty"`
	Description       *string `gorm:"type:text" json:"description,omitempty"`

	Status      string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `gorm:"type:text" json:"review_notes,omitempty"`
	IssuedBy    *uuid.UUID `gorm:"type:uuid" json:"issued_by,omitempty"`

	User        *userModel.UserModel               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Competition *competitionModel.CompetitionModel `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AwardModel) TableName() string {
	return "awards"
}

func (m *AwardModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}
