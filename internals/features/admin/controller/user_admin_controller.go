package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"competition_portal_backend/internals/features/admin/dto"
	"competition_portal_backend/internals/features/admin/service"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

// ListUsers searches the user directory for the admin console.
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ac.DB.Model(&userModel.UserModel{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"username LIKE ? OR email LIKE ? OR real_name LIKE ? OR student_id LIKE ?",
			like, like, like, like,
		)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var users []userModel.UserModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"users":      users,
		"pagination": helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

func (ac *AdminController) ChangeUserRole(c *fiber.Ctx) error {
	actorID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.ChangeUserRole(ac.DB, actorID, helper.GetUserRole(c), targetID, req.Role)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Role updated", user)
}

func (ac *AdminController) ChangeUserStatus(c *fiber.Ctx) error {
	actorID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.ChangeUserStatus(ac.DB, actorID, targetID, req.Status)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Status updated", user)
}
