package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rallyround/internal/events"
	"rallyround/internal/models"
	"rallyround/internal/services"
	"rallyround/internal/tasks/rate"
	"rallyround/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// TaskHandler processes the queued jobs: donation totals, expired
// fundraisers, stale invites and event reminders.
type TaskHandler struct {
	db          *gorm.DB
	logger      *logger.Logger
	fundraisers *services.FundraiserService
	limiter     *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB, client *TaskClient) *TaskHandler {
	limiter := rate.NewQueueRateLimiter(client.GetRedisClient(), rate.QueueConfig{
		Name: "event_reminders",
		RateLimit: rate.RateLimit{
			Window:  time.Hour,
			MaxJobs: 20,
		},
	})

	// The client doubles as the donation listener's producer, so every
	// donation lands a recompute task on the critical queue.
	return &TaskHandler{
		db:          db,
		logger:      logger.New("task_handler"),
		fundraisers: services.NewFundraiserService(db, client),
		limiter:     limiter,
	}
}

// HandleFundraiserRecompute refreshes the raised total for one fundraiser
func (h *TaskHandler) HandleFundraiserRecompute(ctx context.Context, t *asynq.Task) error {
	var payload FundraiserRecomputePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := h.fundraisers.RecomputeTotals(ctx, payload.FundraiserID); err != nil {
		return h.logger.Error("Failed to recompute fundraiser totals", err)
	}

	return nil
}

// HandleFundraiserClose cancels active fundraisers that passed their deadline
func (h *TaskHandler) HandleFundraiserClose(ctx context.Context, t *asynq.Task) error {
	closed, err := h.fundraisers.CloseExpired(ctx)
	if err != nil {
		return h.logger.Error("Failed to close expired fundraisers", err)
	}

	if closed > 0 {
		h.logger.Info("closed %d expired fundraisers", closed)
	}
	return nil
}

// HandleInviteCleanup rejects pending invites whose code expired
func (h *TaskHandler) HandleInviteCleanup(ctx context.Context, t *asynq.Task) error {
	result := h.db.WithContext(ctx).
		Model(&models.TeamInvite{}).
		Where("status = ? AND expires_at < ?", models.InviteStatusPending, time.Now()).
		Update("status", models.InviteStatusRejected)
	if result.Error != nil {
		return h.logger.Error("Failed to clean up invites", result.Error)
	}

	if result.RowsAffected > 0 {
		h.logger.Info("expired %d stale invites", result.RowsAffected)
	}
	return nil
}

// HandleEventReminders emits a reminder for each scheduled event starting in
// the next day, rate limited per organization so one busy org cannot drown
// the notification queue.
func (h *TaskHandler) HandleEventReminders(ctx context.Context, t *asynq.Task) error {
	var upcoming []models.Event
	if err := h.db.WithContext(ctx).
		Where("status = ? AND starts_at BETWEEN ? AND ?",
			models.EventStatusScheduled, time.Now(), time.Now().Add(24*time.Hour)).
		Find(&upcoming).Error; err != nil {
		return h.logger.Error("Failed to load upcoming events", err)
	}

	for i := range upcoming {
		allowed, err := h.limiter.Allow(ctx, upcoming[i].OrgID)
		if err != nil {
			h.logger.Warn("reminder rate check failed for org %s: %v", upcoming[i].OrgID, err)
			continue
		}
		if !allowed {
			h.logger.Warn("reminder rate limit hit for org %s", upcoming[i].OrgID)
			continue
		}

		events.Emit("event.reminder", &upcoming[i])
	}

	return nil
}
