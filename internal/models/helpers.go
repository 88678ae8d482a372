package models

import (
	"gorm.io/gorm"
)

// GetOrganizationBySlug retrieves an organization from the database by its slug
func GetOrganizationBySlug(slug string, db *gorm.DB) (*Organization, error) {
	org := &Organization{}
	if err := db.Where("slug = ? AND is_deleted = false", slug).First(org).Error; err != nil {
		return nil, err
	}
	return org, nil
}

func GetMediaByID(id string, db *gorm.DB) (*Media, error) {
	media := &Media{}
	if err := db.Where("id = ? AND is_deleted = false", id).First(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// UserOrgIDs returns the IDs of organizations the user belongs to.
func UserOrgIDs(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&OrgMembership{}).
		Where("user_id = ? AND is_deleted = false", userID).
		Pluck("org_id", &ids).Error
	return ids, err
}

// UserTeamIDs returns the IDs of teams the user belongs to.
func UserTeamIDs(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&TeamMembership{}).
		Where("user_id = ? AND is_deleted = false", userID).
		Pluck("team_id", &ids).Error
	return ids, err
}
