package dto

type UpdateProfileRequest struct {
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	RealName  *string `json:"real_name" validate:"omitempty,max=100"`
	Avatar    *string `json:"avatar" validate:"omitempty,max=512"`
	StudentID *string `json:"student_id" validate:"omitempty,max=50"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}
