package rbac

import (
	"context"

	"rallyround/internal/models"

	"gorm.io/gorm"
)

// GormRoleStore reads role grants from the role_assignments table.
type GormRoleStore struct {
	db *gorm.DB
}

var _ RoleSource = (*GormRoleStore)(nil)

func NewGormRoleStore(db *gorm.DB) *GormRoleStore {
	return &GormRoleStore{db: db}
}

// GetUserRoles returns the distinct role names granted to the user. Scoped
// grants (per org or team) still contribute their role name; the scope is
// carried separately in the AccessContext a caller builds.
func (s *GormRoleStore) GetUserRoles(ctx context.Context, userID string) ([]Role, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.RoleAssignment{}).
		Where("user_id = ? AND is_deleted = false", userID).
		Distinct().
		Pluck("role", &names).Error
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, Role(name))
	}
	return roles, nil
}
