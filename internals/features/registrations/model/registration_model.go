package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	competitionModel "competition_portal_backend/internals/features/competitions/model"
	userModel "competition_portal_backend/internals/features/users/user/model"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Attachment is one entry of the attachments JSON array.
type Attachment struct {
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name"`
	Filename     string    `json:"filename"`
	Mime         string    `json:"mime"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type RegistrationModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// The unique index on (user_id, competition_id) is the authority for the
	// one-registration-per-competition rule; the pre-insert existence check
	// in the service is only a fast path.
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_competition" json:"user_id"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_user_competition" json:"competition_id"`

	Status           string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RegistrationData datatypes.JSON `json:"registration_data,omitempty"`
	Attachments      datatypes.JSON `json:"attachments,omitempty"`

	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `gorm:"type:text" json:"review_notes,omitempty"`

	User        *userModel.UserModel               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Competition *competitionModel.CompetitionModel `gorm:"foreignKey:CompetitionID" json:"competition,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RegistrationModel) TableName() string {
	return "registrations"
}

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}

// AttachmentList decodes the attachments column; a missing or malformed
// column yields an empty list.
func (m *RegistrationModel) AttachmentList() []Attachment {
	if len(m.Attachments) == 0 {
		return nil
	}
	var out []Attachment
	if err := json.Unmarshal(m.Attachments, &out); err != nil {
		return nil
	}
	return out
}

// AppendAttachments adds entries to the attachments array, never replacing
// earlier ones.
func (m *RegistrationModel) AppendAttachments(added []Attachment) error {
	next := append(m.AttachmentList(), added...)
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	m.Attachments = datatypes.JSON(raw)
	return nil
}
