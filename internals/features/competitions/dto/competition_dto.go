package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type CreateCompetitionRequest struct {
	Title             string         `json:"title" validate:"required,max=255"`
	Description       string         `json:"description"`
	Type              string         `json:"type" validate:"omitempty,max=50"`
	CoverImage        *string        `json:"cover_image" validate:"omitempty,max=512"`
	StartTime         string         `json:"start_time" validate:"required"`
	EndTime           string         `json:"end_time" validate:"required"`
	RegistrationStart string         `json:"registration_start" validate:"required"`
	RegistrationEnd   string         `json:"registration_end" validate:"required"`
	MaxParticipants   int            `json:"max_participants" validate:"omitempty,min=0"`
	Requirements      datatypes.JSON `json:"requirements"`
	Rules             *string        `json:"rules"`
	Awards            datatypes.JSON `json:"awards"`
}

// UpdateCompetitionRequest is a schema-validated partial payload: only the
// enumerated fields are applied, nil means "leave unchanged".
type UpdateCompetitionRequest struct {
	Title             *string        `json:"title" validate:"omitempty,max=255"`
	Description       *string        `json:"description"`
	Type              *string        `json:"type" validate:"omitempty,max=50"`
	CoverImage        *string        `json:"cover_image" validate:"omitempty,max=512"`
	StartTime         *string        `json:"start_time"`
	EndTime           *string        `json:"end_time"`
	RegistrationStart *string        `json:"registration_start"`
	RegistrationEnd   *string        `json:"registration_end"`
	MaxParticipants   *int           `json:"max_participants" validate:"omitempty,min=0"`
	Status            *string        `json:"status" validate:"omitempty,oneof=draft open closed in_progress ended cancelled"`
	Requirements      datatypes.JSON `json:"requirements"`
	Rules             *string        `json:"rules"`
	Awards            datatypes.JSON `json:"awards"`
}

// ParseTimestamp accepts RFC3339 or date-only values.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid timestamp: "+raw)
}
