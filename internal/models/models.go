package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	Base
	Name        string          `gorm:"not null" json:"name" validate:"required,min=2"`
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug" validate:"required,min=2"`
	Description string          `json:"description"`
	Members     []OrgMembership `gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Teams       []Team          `gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE" json:"teams,omitempty"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

type OrgMembership struct {
	Base
	OrgID  string         `gorm:"type:uuid;not null;index:idx_org_member,unique" json:"orgId" validate:"required,uuid"`
	Org    *Organization  `json:"org,omitempty"`
	UserID string         `gorm:"type:uuid;not null;index:idx_org_member,unique" json:"userId" validate:"required,uuid"`
	User   *User          `json:"user,omitempty"`
	Role   MembershipRole `gorm:"not null;default:'MEMBER'" json:"role" validate:"required,oneof=OWNER MANAGER MEMBER"`
}

type Team struct {
	Base
	OrgID   string           `gorm:"type:uuid;not null;index" json:"orgId" validate:"required,uuid"`
	Org     *Organization    `json:"org,omitempty"`
	Name    string           `gorm:"not null" json:"name" validate:"required,min=2"`
	Sport   string           `json:"sport"`
	Members []TeamMembership `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Invites []TeamInvite     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"invites,omitempty"`
}

type TeamMembership struct {
	Base
	TeamID string         `gorm:"type:uuid;not null;index:idx_team_member,unique" json:"teamId" validate:"required,uuid"`
	Team   *Team          `json:"team,omitempty"`
	UserID string         `gorm:"type:uuid;not null;index:idx_team_member,unique" json:"userId" validate:"required,uuid"`
	User   *User          `json:"user,omitempty"`
	Role   MembershipRole `gorm:"not null;default:'MEMBER'" json:"role" validate:"required,oneof=OWNER MANAGER MEMBER"`
}

type TeamInvite struct {
	Base
	Email     string       `gorm:"not null" json:"email" validate:"required,email"`
	Name      string       `gorm:"not null" json:"name" validate:"required,min=2"`
	TeamID    string       `gorm:"type:uuid;not null" json:"teamId" validate:"required,uuid"`
	Team      *Team        `json:"team,omitempty"`
	InviterID string       `gorm:"type:uuid;not null" json:"inviterId" validate:"required,uuid"`
	Inviter   *User        `json:"inviter,omitempty"`
	Role      MembershipRole `gorm:"not null;default:'MEMBER'" json:"role" validate:"required,oneof=MANAGER MEMBER"`
	Code      string       `gorm:"not null" json:"code" validate:"required,min=4"`
	Status    InviteStatus `gorm:"not null;default:'PENDING'" json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
	ExpiresAt time.Time    `gorm:"not null" json:"expiresAt" validate:"required,gt=now"`
}

// Media is an uploaded asset (fundraiser cover, event banner). SignedURL is
// filled in after load by the registered URL generator.
type Media struct {
	Base
	OrgID     string `gorm:"type:uuid;default:NULL" json:"orgId" validate:"omitempty,uuid"`
	UserID    string `gorm:"type:uuid;default:NULL" json:"userId" validate:"omitempty,uuid"`
	User      *User  `json:"user,omitempty"`
	Path      string `gorm:"not null" json:"path" validate:"required"`
	Name      string `gorm:"not null" json:"name" validate:"required"`
	Size      int64  `gorm:"not null" json:"size" validate:"required,min=1"`
	Type      string `gorm:"not null" json:"type" validate:"required"`
	SignedURL string `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}

func (m *Media) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		url, err := generator.GetSignedURL(tx.Statement.Context, m.Path, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		m.SignedURL = url
	}
	return nil
}
