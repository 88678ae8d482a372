package models

import (
	"rallyround/internal/events"

	"gorm.io/gorm"
)

func (o *Organization) AfterCreate(tx *gorm.DB) error {
	events.Emit("organization.created", o)
	return nil
}

func (t *TeamInvite) AfterCreate(tx *gorm.DB) error {
	log.Info("Team invite created for %s", t.Email)
	events.Emit("invite.created", t)
	return nil
}

func (d *Donation) AfterCreate(tx *gorm.DB) error {
	events.Emit("donation.created", d)
	return nil
}
