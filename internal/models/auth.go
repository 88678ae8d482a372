package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	Base
	Email        string           `gorm:"uniqueIndex;not null" json:"email"`
	Password     string           `gorm:"not null" json:"-"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Roles        []RoleAssignment `gorm:"foreignKey:UserID" json:"roles,omitempty"`
	Orgs         []OrgMembership  `gorm:"foreignKey:UserID" json:"orgs,omitempty"`
	Teams        []TeamMembership `gorm:"foreignKey:UserID" json:"teams,omitempty"`
	Provider     string           `gorm:"default:'local'" json:"provider"`
	ProviderID   string           `gorm:"index" json:"providerId,omitempty"`
	ProviderData datatypes.JSON   `gorm:"type:jsonb" json:"providerData,omitempty"`
}

type PasswordReset struct {
	Base
	User      *User     `json:"user,omitempty"`
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	Code      string    `gorm:"not null" json:"code"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthSession is one persisted login. The page guard resolves it from the
// session cookie and the API middleware from the Bearer token.
type AuthSession struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"not null;index" json:"-"`
	Refresh   string    `gorm:"not null" json:"-"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
