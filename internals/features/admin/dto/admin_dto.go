package dto

// ReviewRequest is the shared body of the registration and award review
// endpoints.
type ReviewRequest struct {
	Status string  `json:"status" validate:"required,oneof=approved rejected"`
	Notes  *string `json:"review_notes" validate:"omitempty,max=2000"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin super_admin"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active disabled"`
}

// IssueCertificateRequest accepts both JSON and multipart form bodies; the
// certificate may arrive as a URL field or as an uploaded "certificate" file.
type IssueCertificateRequest struct {
	UserID           string  `json:"user_id" form:"user_id" validate:"required,uuid"`
	CompetitionID    *string `json:"competition_id" form:"competition_id" validate:"omitempty"`
	AwardName        string  `json:"award_name" form:"award_name" validate:"required,max=255"`
	AwardRank        *string `json:"award_rank" form:"award_rank" validate:"omitempty,max=50"`
	AwardTime        string  `json:"award_time" form:"award_time" validate:"required"`
	CertificateImage string  `json:"certificate_image" form:"certificate_image" validate:"omitempty,max=512"`
	Description      *string `json:"description" form:"description" validate:"omitempty,max=2000"`
}
