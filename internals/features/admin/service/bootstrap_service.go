package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	authService "competition_portal_backend/internals/features/users/auth/service"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

// AdminAccountInput carries the bootstrap account values read from the
// environment by cmd/createadmin.
type AdminAccountInput struct {
	Username  string
	Email     string
	Password  string
	StudentID string
	RealName  string
	Role      string
}

// EnsureAdminAccount creates the initial admin account, or promotes an
// existing account matched by username, email, or student id. Rerunning is
// safe: an existing account gets the requested role and active status but
// keeps its password.
func EnsureAdminAccount(db *gorm.DB, in AdminAccountInput) (*userModel.UserModel, bool, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = constants.RoleAdmin
	}
	if role != constants.RoleAdmin && role != constants.RoleSuperAdmin {
		return nil, false, errors.New("ADMIN_ROLE must be admin or super_admin")
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	if username == "" || email == "" || password == "" {
		return nil, false, errors.New("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if len(password) < 6 {
		return nil, false, errors.New("ADMIN_PASSWORD must be at least 6 characters")
	}

	studentID := strings.TrimSpace(in.StudentID)
	query := db.Where("username = ? OR email = ?", username, email)
	if studentID != "" {
		query = db.Where("username = ? OR email = ? OR student_id = ?", username, email, studentID)
	}

	var existing userModel.UserModel
	err := query.First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"role":   role,
			"status": constants.UserStatusActive,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, false, err
		}
		existing.Role = role
		existing.Status = constants.UserStatusActive
		return &existing, false, nil
	}
	if !helper.IsNotFound(err) {
		return nil, false, err
	}

	hashed, err := authService.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user := userModel.UserModel{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
		Status:   constants.UserStatusActive,
	}
	if studentID != "" {
		user.StudentID = &studentID
	}
	if realName := strings.TrimSpace(in.RealName); realName != "" {
		user.RealName = &realName
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}
