package tasks

import "time"

// Task Types
const (
	TaskTypeFundraiserRecompute = "fundraiser:recompute"
	TaskTypeFundraiserClose     = "fundraiser:close_expired"
	TaskTypeInviteCleanup       = "invites:cleanup"
	TaskTypeEventReminders      = "events:remind"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like donation totals
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// FundraiserRecomputePayload names the fundraiser whose totals need a
// refresh after a donation lands.
type FundraiserRecomputePayload struct {
	FundraiserID string `json:"fundraiser_id"`
}
