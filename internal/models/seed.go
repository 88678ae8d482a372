package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	console "rallyround/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// Membership role to rbac role name. Joining an organization as OWNER makes
// the user an org_admin for that org; managing a team grants team_manager.
var membershipRoles = map[MembershipRole]string{
	MembershipRoleOwner:   "org_admin",
	MembershipRoleManager: "team_manager",
	MembershipRoleMember:  "member",
}

// AssignMembershipRole records the role grant that corresponds to an org or
// team membership, scoped to that org/team.
func AssignMembershipRole(db *gorm.DB, userID string, role MembershipRole, orgID, teamID string) error {
	name, ok := membershipRoles[role]
	if !ok {
		return fmt.Errorf("unknown membership role: %s", role)
	}

	assignment := RoleAssignment{
		UserID: userID,
		Role:   name,
		OrgID:  orgID,
		TeamID: teamID,
	}

	if err := db.FirstOrCreate(&assignment, RoleAssignment{
		UserID: userID,
		Role:   name,
		OrgID:  orgID,
		TeamID: teamID,
	}).Error; err != nil {
		return fmt.Errorf("failed to assign role %s to user %s: %v", name, userID, err)
	}

	return nil
}

func CreateSuperAdminFromEnv(db *gorm.DB) error {
	// check if a global admin already exists
	var count int64
	db.Model(&RoleAssignment{}).Where("role = ? AND org_id IS NULL AND team_id IS NULL", "admin").Count(&count)
	log.Info("Global admin count: %d", count)
	if count > 0 {
		return nil
	}

	email, ok := os.LookupEnv("SUPERADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("SUPERADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("SUPERADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("SUPERADMIN_PASSWORD not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	name, ok := os.LookupEnv("SUPERADMIN_NAME")
	if !ok {
		return fmt.Errorf("SUPERADMIN_NAME not set")
	}

	user := User{
		FirstName: name,
		LastName:  "",
		Email:     email,
		Password:  string(hashedPassword),
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	assignment := RoleAssignment{
		UserID: user.ID,
		Role:   "admin",
	}

	if err := db.Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to create admin role assignment: %v", err)
	}

	return nil
}
