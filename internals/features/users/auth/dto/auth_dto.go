package dto

import (
	userModel "competition_portal_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=6"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	RealName  *string `json:"real_name" validate:"omitempty,max=100"`
	StudentID *string `json:"student_id" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Login     string `json:"login"`
	StudentID string `json:"student_id"` // legacy clients send the identifier here
	Password  string `json:"password" validate:"required"`
}

// Identifier resolves the login field with the legacy fallback.
func (r *LoginRequest) Identifier() string {
	if r.Login != "" {
		return r.Login
	}
	return r.StudentID
}

type AuthResponse struct {
	User  *userModel.UserModel `json:"user"`
	Token string               `json:"token"`
}
