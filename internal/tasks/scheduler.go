package tasks

import (
	"fmt"
	"time"

	"rallyround/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Scheduler handles periodic task scheduling
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *logger.Logger
}

// NewScheduler creates a new task scheduler
func NewScheduler(redisAddr, username, password string, db int, logger *logger.Logger) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{},
	)

	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if err := s.registerTasks(); err != nil {
		return fmt.Errorf("failed to register tasks: %w", err)
	}

	s.logger.Info("starting task scheduler")
	return s.scheduler.Run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.logger.Info("task scheduler stopped")
}

// registerTasks registers all periodic tasks
func (s *Scheduler) registerTasks() error {
	periodic := []struct {
		spec     string
		taskType string
		queue    string
	}{
		{"0 * * * *", TaskTypeFundraiserClose, QueueDefault},
		{"0 3 * * *", TaskTypeInviteCleanup, QueueLow},
		{"*/30 * * * *", TaskTypeEventReminders, QueueDefault},
	}

	for _, p := range periodic {
		if err := s.RegisterCustomTask(p.spec, p.taskType, nil, asynq.Queue(p.queue)); err != nil {
			return err
		}
	}

	s.logger.Info("registered all periodic tasks")
	return nil
}

// RegisterCustomTask registers a custom periodic task. The spec is parsed
// up front so a bad expression fails registration instead of surfacing
// later inside the scheduler loop.
func (s *Scheduler) RegisterCustomTask(spec string, taskType string, payload []byte, opts ...asynq.Option) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", spec, taskType, err)
	}

	entryID, err := s.scheduler.Register(spec, asynq.NewTask(taskType, payload, opts...))
	if err != nil {
		return fmt.Errorf("failed to register custom task: %w", err)
	}

	s.logger.Info("registered custom task %s %s %s next=%s", taskType, spec, entryID, schedule.Next(time.Now()).Format(time.RFC3339))
	return nil
}
