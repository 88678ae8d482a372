package models

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	Base
	OrgID    string         `gorm:"type:uuid;not null;index" json:"orgId" validate:"required,uuid"`
	Org      *Organization  `json:"org,omitempty"`
	TeamID   string         `gorm:"type:uuid;default:NULL" json:"teamId" validate:"omitempty,uuid"`
	Team     *Team          `json:"team,omitempty"`
	OwnerID  string         `gorm:"type:uuid;not null" json:"ownerId" validate:"required,uuid"`
	Title    string         `gorm:"not null" json:"title" validate:"required,min=2"`
	Location string         `json:"location"`
	StartsAt time.Time      `gorm:"not null" json:"startsAt" validate:"required"`
	EndsAt   time.Time      `json:"endsAt"`
	Status   EventStatus    `gorm:"not null;default:'DRAFT'" json:"status" validate:"required,event_status"`
	IsPublic bool           `gorm:"default:false" json:"isPublic"`
	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

type Competition struct {
	Base
	OrgID    string             `gorm:"type:uuid;not null;index" json:"orgId" validate:"required,uuid"`
	Org      *Organization      `json:"org,omitempty"`
	OwnerID  string             `gorm:"type:uuid;not null" json:"ownerId" validate:"required,uuid"`
	Name     string             `gorm:"not null" json:"name" validate:"required,min=2"`
	StartsAt time.Time          `json:"startsAt"`
	EndsAt   time.Time          `json:"endsAt"`
	Status   CompetitionStatus  `gorm:"not null;default:'DRAFT'" json:"status" validate:"required,oneof=DRAFT OPEN CLOSED FINISHED"`
	IsPublic bool               `gorm:"default:false" json:"isPublic"`
	Entries  []CompetitionEntry `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

type CompetitionEntry struct {
	Base
	CompetitionID string       `gorm:"type:uuid;not null;index:idx_comp_entry,unique" json:"competitionId" validate:"required,uuid"`
	Competition   *Competition `json:"competition,omitempty"`
	TeamID        string       `gorm:"type:uuid;not null;index:idx_comp_entry,unique" json:"teamId" validate:"required,uuid"`
	Team          *Team        `json:"team,omitempty"`
	Score         int          `json:"score"`
	Rank          int          `json:"rank"`
}

type Fundraiser struct {
	Base
	OrgID       string           `gorm:"type:uuid;not null;index" json:"orgId" validate:"required,uuid"`
	Org         *Organization    `json:"org,omitempty"`
	TeamID      string           `gorm:"type:uuid;default:NULL" json:"teamId" validate:"omitempty,uuid"`
	Team        *Team            `json:"team,omitempty"`
	OwnerID     string           `gorm:"type:uuid;not null;index" json:"ownerId" validate:"required,uuid"`
	Owner       *User            `json:"owner,omitempty"`
	Title       string           `gorm:"not null" json:"title" validate:"required,min=2"`
	Description string           `json:"description"`
	GoalCents   int64            `gorm:"not null" json:"goalCents" validate:"required,min=1"`
	RaisedCents int64            `gorm:"default:0" json:"raisedCents"`
	Deadline    time.Time        `json:"deadline"`
	Status      FundraiserStatus `gorm:"not null;default:'DRAFT'" json:"status" validate:"required,fundraiser_status"`
	IsPublic    bool             `gorm:"default:false" json:"isPublic"`
	CoverID     string           `gorm:"type:uuid;default:NULL" json:"coverId,omitempty"`
	Cover       *Media           `gorm:"foreignKey:CoverID" json:"cover,omitempty"`
	Donations   []Donation       `gorm:"foreignKey:FundraiserID;constraint:OnDelete:CASCADE" json:"donations,omitempty"`
}

type Donation struct {
	Base
	FundraiserID string      `gorm:"type:uuid;not null;index" json:"fundraiserId" validate:"required,uuid"`
	Fundraiser   *Fundraiser `json:"fundraiser,omitempty"`
	DonorName    string      `json:"donorName"`
	DonorEmail   string      `json:"donorEmail" validate:"omitempty,email"`
	AmountCents  int64       `gorm:"not null" json:"amountCents" validate:"required,min=1"`
	Message      string      `json:"message"`
	Anonymous    bool        `gorm:"default:false" json:"anonymous"`
}
