package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	"competition_portal_backend/internals/features/users/auth/dto"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

/* ==========================
   REGISTER
========================== */

// Register creates an active `user` role account. Username, email and
// student id are each unique; the DB indexes are authoritative, the
// pre-check only gives a friendlier fast-path message.
func Register(db *gorm.DB, req *dto.RegisterRequest) (*userModel.UserModel, error) {
	studentID := normalizeStudentID(req.StudentID)
	if req.StudentID != nil && studentID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Student ID must not be blank")
	}

	q := db.Where("username = ? OR email = ?", req.Username, req.Email)
	if studentID != nil {
		q = db.Where("username = ? OR email = ? OR student_id = ?", req.Username, req.Email, *studentID)
	}
	var existing userModel.UserModel
	if err := q.First(&existing).Error; err == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Username, email or student ID already exists")
	} else if !helper.IsNotFound(err) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Username:  req.Username,
		Email:     req.Email,
		StudentID: studentID,
		Phone:     req.Phone,
		RealName:  req.RealName,
		Password:  hashed,
		Role:      constants.RoleUser,
		Status:    constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Username, email or student ID already exists")
		}
		return nil, err
	}
	return &user, nil
}

/* ==========================
   LOGIN
========================== */

// Login matches the identifier against student id, phone or email of active
// users. Any mismatch yields the same generic 401 so callers cannot probe
// which field failed.
func Login(db *gorm.DB, identifier, password string) (*userModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identifier and password are required")
	}

	var user userModel.UserModel
	err := db.
		Where("(student_id = ? OR phone = ? OR email = ?) AND status = ?",
			identifier, identifier, identifier, constants.UserStatusActive).
		First(&user).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid account or password")
		}
		return nil, err
	}

	if !CheckPassword(user.Password, password) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid account or password")
	}
	return &user, nil
}

// IssueToken signs an access token carrying the identity snapshot.
func IssueToken(user *userModel.UserModel) (string, error) {
	return helper.GenerateToken(user.ID, user.Username, user.Email, user.Role)
}

func normalizeStudentID(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
