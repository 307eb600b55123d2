package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

// ChangeUserRole implements the role matrix:
//
//	admin       → may set user/admin, never super_admin, and may not touch a
//	              target that currently is super_admin
//	super_admin → may set any role, but cannot demote themself here
func ChangeUserRole(db *gorm.DB, actorID uuid.UUID, actorRole string, targetID uuid.UUID, newRole string) (*userModel.UserModel, error) {
	if !constants.IsValidRole(newRole) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid role")
	}

	if actorRole == constants.RoleAdmin && newRole == constants.RoleSuperAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only a super admin can grant super admin")
	}

	var target userModel.UserModel
	if err := db.First(&target, "id = ?", targetID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}

	if actorRole == constants.RoleAdmin && target.Role == constants.RoleSuperAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "An admin cannot modify a super admin account")
	}

	// Self-demotion lockout guard.
	if actorID == targetID && actorRole == constants.RoleSuperAdmin && newRole != constants.RoleSuperAdmin {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A super admin cannot demote themself here")
	}

	if err := db.Model(&target).Update("role", newRole).Error; err != nil {
		return nil, err
	}
	target.Role = newRole
	return &target, nil
}

// ChangeUserStatus enables or disables an account. Disabled users fail login
// and every authenticated request, which also invalidates their outstanding
// tokens in practice.
func ChangeUserStatus(db *gorm.DB, actorID, targetID uuid.UUID, newStatus string) (*userModel.UserModel, error) {
	if newStatus != constants.UserStatusActive && newStatus != constants.UserStatusDisabled {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}
	if actorID == targetID && newStatus == constants.UserStatusDisabled {
		return nil, fiber.NewError(fiber.StatusBadRequest, "You cannot disable your own account")
	}

	var target userModel.UserModel
	if err := db.First(&target, "id = ?", targetID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}

	if err := db.Model(&target).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	target.Status = newStatus
	return &target, nil
}
