package tasks

import (
	"encoding/json"
	"fmt"

	"rallyround/internal/services"
	"rallyround/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

var _ services.TotalsEnqueuer = (*TaskClient)(nil)

// TaskClient handles task enqueuing with improved error handling and context support
type TaskClient struct {
	client       *asynq.Client
	logger       *logger.Logger
	redisOptions *redis.Options
	redisClient  *redis.Client
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// GetRedisClient exposes the shared Redis connection for rate limiting
func (c *TaskClient) GetRedisClient() *redis.Client {
	return c.redisClient
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		redisOptions: &redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

// EnqueueFundraiserRecompute queues a totals refresh for one fundraiser
func (c *TaskClient) EnqueueFundraiserRecompute(fundraiserID string) error {
	payload, err := json.Marshal(FundraiserRecomputePayload{FundraiserID: fundraiserID})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeFundraiserRecompute, payload)
	info, err := c.client.Enqueue(task,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue fundraiser recompute: %w", err)
	}

	c.logger.Info("enqueued %s id=%s queue=%s", TaskTypeFundraiserRecompute, info.ID, info.Queue)
	return nil
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}
