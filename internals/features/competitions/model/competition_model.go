package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "competition_portal_backend/internals/features/users/user/model"
)

// Competition lifecycle statuses. Advisory only: the server never
// auto-transitions, administrators set the status explicitly.
const (
	StatusDraft      = "draft"
	StatusOpen       = "open"
	StatusClosed     = "closed"
	StatusInProgress = "in_progress"
	StatusEnded      = "ended"
	StatusCancelled  = "cancelled"
)

type CompetitionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:50;not null;default:'other'" json:"type"`
	CoverImage  *string   `gorm:"size:512" json:"cover_image,omitempty"`

	StartTime         time.Time `gorm:"not null" json:"start_time"`
	EndTime           time.Time `gorm:"not null" json:"end_time"`
	RegistrationStart time.Time `gorm:"not null" json:"registration_start"`
	RegistrationEnd   time.Time `gorm:"not null" json:"registration_end"`

	// 0 = unlimited.
	MaxParticipants int `gorm:"not null;default:0" json:"max_participants"`
	// Audit counter: incremented once per approved registration, never
	// decremented. The live "currently approved" count is derived per
	// request (see ApprovedCount in the detail response).
	CurrentParticipants int `gorm:"not null;default:0" json:"current_participants"`

	Status       string         `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Requirements datatypes.JSON `json:"requirements,omitempty"`
	Rules        *string        `gorm:"type:text" json:"rules,omitempty"`
	Awards       datatypes.JSON `json:"awards,omitempty"`

	CreatedBy uuid.UUID            `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator   *userModel.UserModel `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CompetitionModel) TableName() string {
	return "competitions"
}

func (m *CompetitionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusDraft
	}
	if m.Type == "" {
		m.Type = "other"
	}
	return nil
}

// RegistrationOpenAt reports whether t falls inside the registration window.
func (m *CompetitionModel) RegistrationOpenAt(t time.Time) bool {
	return !t.Before(m.RegistrationStart) && !t.After(m.RegistrationEnd)
}
