package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"isDeleted" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

type MembershipRole string

const (
	MembershipRoleOwner   MembershipRole = "OWNER"
	MembershipRoleManager MembershipRole = "MANAGER"
	MembershipRoleMember  MembershipRole = "MEMBER"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusRejected InviteStatus = "REJECTED"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

type CompetitionStatus string

const (
	CompetitionStatusDraft    CompetitionStatus = "DRAFT"
	CompetitionStatusOpen     CompetitionStatus = "OPEN"
	CompetitionStatusClosed   CompetitionStatus = "CLOSED"
	CompetitionStatusFinished CompetitionStatus = "FINISHED"
)

type FundraiserStatus string

const (
	FundraiserStatusDraft     FundraiserStatus = "DRAFT"
	FundraiserStatusActive    FundraiserStatus = "ACTIVE"
	FundraiserStatusCompleted FundraiserStatus = "COMPLETED"
	FundraiserStatusCancelled FundraiserStatus = "CANCELLED"
)
