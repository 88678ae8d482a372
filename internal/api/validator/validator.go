package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Register custom validation tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	if err := v.RegisterValidation("user_role", validateUserRole); err != nil {
		return nil
	}
	if err := v.RegisterValidation("invite_status", validateInviteStatus); err != nil {
		return nil
	}
	if err := v.RegisterValidation("event_status", validateEventStatus); err != nil {
		return nil
	}
	if err := v.RegisterValidation("fundraiser_status", validateFundraiserStatus); err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateUserRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	switch role {
	case "admin", "org_admin", "team_manager", "member":
		return true
	default:
		return false
	}
}

func validateInviteStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "PENDING" || status == "ACCEPTED" || status == "REJECTED"
}

func validateEventStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "DRAFT" || status == "SCHEDULED" || status == "CANCELLED" || status == "COMPLETED"
}

func validateFundraiserStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "DRAFT" || status == "ACTIVE" || status == "COMPLETED" || status == "CANCELLED"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// OrganizationRequest Request validation structs based on models
type OrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug" validate:"required,min=2"`
	Description string `json:"description"`
}

type TeamRequest struct {
	OrgID string `json:"orgId" validate:"required,uuid"`
	Name  string `json:"name" validate:"required,min=2"`
	Sport string `json:"sport"`
}

type TeamInviteRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"required"`
	TeamID    string    `json:"teamId" validate:"required,uuid"`
	Role      string    `json:"role" validate:"required,oneof=MANAGER MEMBER"`
	ExpiresAt time.Time `json:"expiresAt" validate:"required,gt=now"`
}

type EventRequest struct {
	OrgID    string    `json:"orgId" validate:"required,uuid"`
	TeamID   string    `json:"teamId" validate:"omitempty,uuid"`
	Title    string    `json:"title" validate:"required,min=2"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"omitempty,gtfield=StartsAt"`
	Status   string    `json:"status" validate:"required,event_status"`
	IsPublic bool      `json:"isPublic"`
}

type CompetitionRequest struct {
	OrgID    string    `json:"orgId" validate:"required,uuid"`
	Name     string    `json:"name" validate:"required,min=2"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Status   string    `json:"status" validate:"required,oneof=DRAFT OPEN CLOSED FINISHED"`
	IsPublic bool      `json:"isPublic"`
}

type FundraiserRequest struct {
	OrgID       string    `json:"orgId" validate:"required,uuid"`
	TeamID      string    `json:"teamId" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,min=2"`
	Description string    `json:"description"`
	GoalCents   int64     `json:"goalCents" validate:"required,min=1"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status" validate:"required,fundraiser_status"`
	IsPublic    bool      `json:"isPublic"`
}

type DonationRequest struct {
	FundraiserID string `json:"fundraiserId" validate:"required,uuid"`
	DonorName    string `json:"donorName"`
	DonorEmail   string `json:"donorEmail" validate:"omitempty,email"`
	AmountCents  int64  `json:"amountCents" validate:"required,min=1"`
	Message      string `json:"message"`
	Anonymous    bool   `json:"anonymous"`
}

type RoleAssignmentRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Role   string `json:"role" validate:"required,user_role"`
	OrgID  string `json:"orgId" validate:"omitempty,uuid"`
	TeamID string `json:"teamId" validate:"omitempty,uuid"`
}
