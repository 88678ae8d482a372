package middleware

import (
	"context"

	"rallyround/internal/models"

	"gorm.io/gorm"
)

// MembershipSource supplies the caller's org and team memberships so rule
// conditions evaluated on guarded pages can see them.
type MembershipSource interface {
	UserOrgIDs(ctx context.Context, userID string) ([]string, error)
	UserTeamIDs(ctx context.Context, userID string) ([]string, error)
}

// GormMembershipSource reads memberships from the membership tables.
type GormMembershipSource struct {
	db *gorm.DB
}

func NewGormMembershipSource(db *gorm.DB) *GormMembershipSource {
	return &GormMembershipSource{db: db}
}

func (s *GormMembershipSource) UserOrgIDs(ctx context.Context, userID string) ([]string, error) {
	return models.UserOrgIDs(s.db.WithContext(ctx), userID)
}

func (s *GormMembershipSource) UserTeamIDs(ctx context.Context, userID string) ([]string, error) {
	return models.UserTeamIDs(s.db.WithContext(ctx), userID)
}
