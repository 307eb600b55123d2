package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"competition_portal_backend/internals/constants"
)

func TestChangeUserRoleByAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	target := seedUser(t, db, "alice", constants.RoleUser)

	updated, err := ChangeUserRole(db, admin.ID, constants.RoleAdmin, target.ID, constants.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, constants.RoleAdmin, updated.Role)

	// An admin can demote a plain admin back to user.
	updated, err = ChangeUserRole(db, admin.ID, constants.RoleAdmin, target.ID, constants.RoleUser)
	require.NoError(t, err)
	require.Equal(t, constants.RoleUser, updated.Role)
}

func TestChangeUserRoleAdminCannotGrantSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	target := seedUser(t, db, "alice", constants.RoleUser)

	_, err := ChangeUserRole(db, admin.ID, constants.RoleAdmin, target.ID, constants.RoleSuperAdmin)
	require.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))
}

func TestChangeUserRoleAdminCannotTouchSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	root := seedUser(t, db, "root", constants.RoleSuperAdmin)

	_, err := ChangeUserRole(db, admin.ID, constants.RoleAdmin, root.ID, constants.RoleUser)
	require.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))
}

func TestChangeUserRoleSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	root := seedUser(t, db, "root", constants.RoleSuperAdmin)
	target := seedUser(t, db, "alice", constants.RoleUser)

	updated, err := ChangeUserRole(db, root.ID, constants.RoleSuperAdmin, target.ID, constants.RoleSuperAdmin)
	require.NoError(t, err)
	require.Equal(t, constants.RoleSuperAdmin, updated.Role)

	// Self-demotion of the acting super admin is refused.
	_, err = ChangeUserRole(db, root.ID, constants.RoleSuperAdmin, root.ID, constants.RoleUser)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestChangeUserRoleUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	root := seedUser(t, db, "root", constants.RoleSuperAdmin)

	_, err := ChangeUserRole(db, root.ID, constants.RoleSuperAdmin, uuid.New(), constants.RoleAdmin)
	require.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))

	_, err = ChangeUserRole(db, root.ID, constants.RoleSuperAdmin, uuid.New(), "owner")
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestChangeUserStatus(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	target := seedUser(t, db, "alice", constants.RoleUser)

	updated, err := ChangeUserStatus(db, admin.ID, target.ID, constants.UserStatusDisabled)
	require.NoError(t, err)
	require.Equal(t, constants.UserStatusDisabled, updated.Status)

	updated, err = ChangeUserStatus(db, admin.ID, target.ID, constants.UserStatusActive)
	require.NoError(t, err)
	require.Equal(t, constants.UserStatusActive, updated.Status)

	// Locking yourself out is refused.
	_, err = ChangeUserStatus(db, admin.ID, admin.ID, constants.UserStatusDisabled)
	require.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}
