package services

import (
	"context"
	"time"

	"rallyround/internal/events"
	"rallyround/internal/models"
	"rallyround/internal/utils/logger"

	"gorm.io/gorm"
)

// TotalsEnqueuer queues a totals refresh so it runs on the worker instead
// of the request path.
type TotalsEnqueuer interface {
	EnqueueFundraiserRecompute(fundraiserID string) error
}

// FundraiserService owns the fundraiser math the generic CRUD layer does
// not cover: keeping RaisedCents in sync with donations and closing
// campaigns that passed their deadline.
type FundraiserService struct {
	db     *gorm.DB
	totals TotalsEnqueuer
	log    *logger.Logger
}

// NewFundraiserService subscribes to donation events. With an enqueuer the
// totals refresh goes through the task queue; without one it runs inline,
// which keeps single-process setups working.
func NewFundraiserService(db *gorm.DB, totals TotalsEnqueuer) *FundraiserService {
	s := &FundraiserService{
		db:     db,
		totals: totals,
		log:    logger.New("fundraiser_service"),
	}

	events.On("donation.created", func(data interface{}) {
		donation, ok := data.(*models.Donation)
		if !ok {
			return
		}
		if s.totals != nil {
			if err := s.totals.EnqueueFundraiserRecompute(donation.FundraiserID); err != nil {
				s.log.Warn("Failed to enqueue totals refresh for fundraiser %s: %v", donation.FundraiserID, err)
			}
			return
		}
		if err := s.RecomputeTotals(context.Background(), donation.FundraiserID); err != nil {
			s.log.Warn("Failed to recompute totals for fundraiser %s: %v", donation.FundraiserID, err)
		}
	})

	return s
}

// RecomputeTotals recalculates RaisedCents from the donation rows and marks
// the fundraiser completed once the goal is met.
func (s *FundraiserService) RecomputeTotals(ctx context.Context, fundraiserID string) error {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("fundraiser_id = ? AND is_deleted = false", fundraiserID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	var fundraiser models.Fundraiser
	if err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = false", fundraiserID).First(&fundraiser).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{"raised_cents": total}
	if fundraiser.Status == models.FundraiserStatusActive && total >= fundraiser.GoalCents {
		updates["status"] = models.FundraiserStatusCompleted
		s.log.Success("Fundraiser %s reached its goal", fundraiserID)
	}

	if err := s.db.WithContext(ctx).Model(&models.Fundraiser{}).Where("id = ?", fundraiserID).Updates(updates).Error; err != nil {
		return err
	}

	events.Emit("fundraiser.totals", fundraiserID)
	return nil
}

// CloseExpired cancels active fundraisers whose deadline passed without
// reaching the goal. Returns the number of campaigns closed.
func (s *FundraiserService) CloseExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Fundraiser{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ? AND is_deleted = false",
			models.FundraiserStatusActive, time.Now()).
		Update("status", models.FundraiserStatusCancelled)
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		s.log.Info("Closed %d expired fundraisers", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
