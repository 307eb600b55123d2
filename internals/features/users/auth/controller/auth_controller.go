package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/users/auth/dto"
	"competition_portal_backend/internals/features/users/auth/service"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.Register(ac.DB, &req)
	if err != nil {
		return err
	}

	token, err := service.IssueToken(user)
	if err != nil {
		return err
	}

	return helper.JsonWithCode(c, fiber.StatusCreated, "Registration successful", dto.AuthResponse{
		User:  user,
		Token: token,
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := service.Login(ac.DB, req.Identifier(), req.Password)
	if err != nil {
		return err
	}

	token, err := service.IssueToken(user)
	if err != nil {
		return err
	}

	return helper.JsonOK(c, "Login successful", dto.AuthResponse{
		User:  user,
		Token: token,
	})
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return helper.JsonOK(c, "", &user)
}
