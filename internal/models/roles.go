package models

// RoleAssignment is one persisted role grant. Role holds the rbac role name
// ("admin", "org_admin", "team_manager", "member"); OrgID/TeamID narrow the
// grant to one organization or team, empty means global. A user may hold
// several assignments at once.
type RoleAssignment struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"userId" validate:"required,uuid"`
	User   *User  `json:"user,omitempty"`
	Role   string `gorm:"not null" json:"role" validate:"required,user_role"`
	OrgID  string `gorm:"type:uuid;default:NULL" json:"orgId,omitempty" validate:"omitempty,uuid"`
	TeamID string `gorm:"type:uuid;default:NULL" json:"teamId,omitempty" validate:"omitempty,uuid"`
}
