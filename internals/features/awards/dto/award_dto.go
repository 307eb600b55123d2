package dto

type CreateAwardRequest struct {
	CompetitionID    *string `json:"competition_id" form:"competition_id" validate:"omitempty,uuid4"`
	AwardLevel       string  `json:"award_level" form:"award_level" validate:"required"`
	AwardName        string  `json:"award_name" form:"award_name" validate:"required,max=255"`
	AwardRank        *string `json:"award_rank" form:"award_rank" validate:"omitempty,max=50"`
	AwardTime        string  `json:"award_time" form:"award_time" validate:"required"`
	CertificateImage string  `json:"certificate_image" form:"certificate_image"`
	Description      *string `json:"description" form:"description"`
}

// UpdateAwardRequest is a partial payload; only pending awards accept it.
type UpdateAwardRequest struct {
	CompetitionID    *string `json:"competition_id" validate:"omitempty,uuid4"`
	AwardLevel       *string `json:"award_level" validate:"omitempty"`
	AwardName        *string `json:"award_name" validate:"omitempty,max=255"`
	AwardRank        *string `json:"award_rank" validate:"omitempty,max=50"`
	AwardTime        *string `json:"award_time"`
	CertificateImage *string `json:"certificate_image"`
	Description      *string `json:"description"`
}
