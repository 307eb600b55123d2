package dto

import "gorm.io/datatypes"

type CreateRegistrationRequest struct {
	CompetitionID    string         `json:"competition_id" validate:"required,uuid4"`
	RegistrationData datatypes.JSON `json:"registration_data"`
}
