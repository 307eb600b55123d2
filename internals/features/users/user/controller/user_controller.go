package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "competition_portal_backend/internals/features/users/auth/service"
	"competition_portal_backend/internals/features/users/user/dto"
	"competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

var validate = validator.New()

type UserController struct {
	DB      *gorm.DB
	Storage storage.BlobService
}

func NewUserController(db *gorm.DB, blob storage.BlobService) *UserController {
	return &UserController{DB: db, Storage: blob}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return helper.JsonOK(c, "", &user)
}

// UpdateProfile accepts JSON or multipart; a multipart `avatar` file wins
// over the avatar URL field and is re-encoded to WebP.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		url, err := uc.Storage.SaveImage("avatars", fh)
		if err != nil {
			return err
		}
		req.Avatar = &url
	}

	updates := map[string]interface{}{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.RealName != nil {
		updates["real_name"] = *req.RealName
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.StudentID != nil {
		trimmed := strings.TrimSpace(*req.StudentID)
		if trimmed == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Student ID must not be blank")
		}
		updates["student_id"] = trimmed
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&model.UserModel{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Student ID already exists")
			}
			return err
		}
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Profile updated", &user)
}

func (uc *UserController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if !authService.CheckPassword(user.Password, req.OldPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "Old password is incorrect")
	}

	hashed, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}

	if err := uc.DB.Model(&user).Update("password", hashed).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Password changed", nil)
}
