package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomRoleTag(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Role string `validate:"required,user_role"`
	}

	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{"admin is valid", "admin", false},
		{"org_admin is valid", "org_admin", false},
		{"team_manager is valid", "team_manager", false},
		{"member is valid", "member", false},
		{"anonymous is not assignable", "anonymous", true},
		{"uppercase is rejected", "ADMIN", true},
		{"garbage is rejected", "superuser", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(payload{Role: tt.role})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusTags(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Invite     string `validate:"omitempty,invite_status"`
		Event      string `validate:"omitempty,event_status"`
		Fundraiser string `validate:"omitempty,fundraiser_status"`
	}

	require.NoError(t, v.Validate(payload{
		Invite:     "PENDING",
		Event:      "SCHEDULED",
		Fundraiser: "ACTIVE",
	}))

	assert.Error(t, v.Validate(payload{Invite: "EXPIRED"}))
	assert.Error(t, v.Validate(payload{Event: "RUNNING"}))
	assert.Error(t, v.Validate(payload{Fundraiser: "OPEN"}))
}

func TestValidationErrorsMessage(t *testing.T) {
	v := NewValidator()

	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	err := v.Validate(payload{})
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	assert.Len(t, verrs, 2)
	assert.Contains(t, verrs.Error(), "Email")
	assert.Contains(t, verrs.Error(), "Name")
}
