package main

import (
	"log"

	"competition_portal_backend/internals/configs"
	"competition_portal_backend/internals/constants"
	database "competition_portal_backend/internals/databases"
	adminService "competition_portal_backend/internals/features/admin/service"
)

// Seeds or promotes the portal's initial admin account from environment
// variables. Safe to rerun.
func main() {
	configs.LoadEnv()
	database.ConnectDB()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	user, created, err := adminService.EnsureAdminAccount(database.DB, adminService.AdminAccountInput{
		Username:  configs.GetEnv("ADMIN_USERNAME"),
		Email:     configs.GetEnv("ADMIN_EMAIL"),
		Password:  configs.GetEnv("ADMIN_PASSWORD"),
		StudentID: configs.GetEnv("ADMIN_STUDENT_ID"),
		RealName:  configs.GetEnv("ADMIN_REALNAME"),
		Role:      configs.GetEnv("ADMIN_ROLE", constants.RoleAdmin),
	})
	if err != nil {
		log.Fatalf("❌ Admin bootstrap failed: %v", err)
	}

	if created {
		log.Printf("✅ Created admin account %s <%s> with role %s", user.Username, user.Email, user.Role)
	} else {
		log.Printf("✅ Promoted existing account %s <%s> to role %s", user.Username, user.Email, user.Role)
	}
}
