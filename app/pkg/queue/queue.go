package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
)

const (
	queueKeyPrefix = "{jobs}:queue:"

	ProcessingSetKey = "{jobs}:processing"
	// Jobs whose scheduled_at lies in the future wait here, scored by unix time.
	ScheduledSetKey = "{jobs}:scheduled"

	defaultDequeueTimeout = 2 * time.Second
)

type Queue interface {
	Enqueue(ctx context.Context, job *entity.Job) error
	Dequeue(ctx context.Context, queues []string) (*entity.Job, error)
	PromoteDue(ctx context.Context, now time.Time) (int, error)
	MarkProcessing(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string) error
	GetQueueDepth(ctx context.Context, queue string) (int64, error)
	GetProcessingJobs(ctx context.Context) ([]string, error)
}

type redisQueue struct {
	client         redis.UniversalClient
	logger         *zap.Logger
	dequeueTimeout time.Duration
}

func NewRedisQueue(client redis.UniversalClient, logger *zap.Logger) Queue {
	return NewRedisQueueWithTimeout(client, logger, defaultDequeueTimeout)
}

// NewRedisQueueWithTimeout sets how long Dequeue blocks before returning an empty result.
func NewRedisQueueWithTimeout(client redis.UniversalClient, logger *zap.Logger, timeout time.Duration) Queue {
	if timeout <= 0 {
		timeout = defaultDequeueTimeout
	}
	return &redisQueue{
		client:         client,
		logger:         logger.With(zap.String("component", "job_queue")),
		dequeueTimeout: timeout,
	}
}

func (q *redisQueue) Enqueue(ctx context.Context, job *entity.Job) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if job.ScheduledAt != nil && job.ScheduledAt.After(time.Now()) {
		err = q.client.ZAdd(ctx, ScheduledSetKey, redis.Z{
			Score:  float64(job.ScheduledAt.Unix()),
			Member: jobData,
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to schedule job: %w", err)
		}
		q.logger.Debug("Job scheduled",
			zap.String("job_id", job.ID),
			zap.Time("scheduled_at", *job.ScheduledAt))
		return nil
	}

	queueKey := GetQueueKey(job.Priority)
	if err := q.client.LPush(ctx, queueKey, jobData).Err(); err != nil {
		q.logger.Error("Failed to enqueue job", zap.String("job_id", job.ID), zap.Error(err))
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Info("Job enqueued",
		zap.String("job_id", job.ID),
		zap.String("type", job.Type.String()),
		zap.String("priority", job.Priority.String()),
		zap.String("queue", queueKey))

	return nil
}

// Dequeue pops the oldest job from the first non-empty queue. BRPOP checks
// keys in argument order, so queues must be passed most urgent first.
// A nil job with a nil error means the wait timed out.
func (q *redisQueue) Dequeue(ctx context.Context, queues []string) (*entity.Job, error) {
	result, err := q.client.BRPop(ctx, q.dequeueTimeout, queues...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected result format from BRPOP")
	}

	var job entity.Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Error("Failed to unmarshal job", zap.String("data", result[1]), zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	q.logger.Debug("Job dequeued",
		zap.String("job_id", job.ID),
		zap.String("type", job.Type.String()),
		zap.String("queue", result[0]))

	return &job, nil
}

// PromoteDue moves scheduled jobs whose time has come onto their priority queue.
func (q *redisQueue) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	members, err := q.client.ZRangeByScore(ctx, ScheduledSetKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read scheduled jobs: %w", err)
	}

	promoted := 0
	for _, member := range members {
		// Only the caller that removes the member pushes it.
		removed, err := q.client.ZRem(ctx, ScheduledSetKey, member).Result()
		if err != nil {
			return promoted, fmt.Errorf("failed to unschedule job: %w", err)
		}
		if removed == 0 {
			continue
		}

		var job entity.Job
		if err := json.Unmarshal([]byte(member), &job); err != nil {
			q.logger.Error("Dropping unreadable scheduled job", zap.Error(err))
			continue
		}
		if err := q.client.LPush(ctx, GetQueueKey(job.Priority), member).Err(); err != nil {
			return promoted, fmt.Errorf("failed to enqueue scheduled job: %w", err)
		}
		promoted++
	}

	return promoted, nil
}

func (q *redisQueue) MarkProcessing(ctx context.Context, jobID string) error {
	err := q.client.ZAdd(ctx, ProcessingSetKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: jobID,
	}).Err()
	if err != nil {
		q.logger.Error("Failed to mark job as processing", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark job as processing: %w", err)
	}

	return nil
}

func (q *redisQueue) MarkCompleted(ctx context.Context, jobID string) error {
	if err := q.client.ZRem(ctx, ProcessingSetKey, jobID).Err(); err != nil {
		q.logger.Error("Failed to mark job as completed", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark job as completed: %w", err)
	}
	return nil
}

// MarkFailed only clears the processing marker. Retries are driven from the
// jobs table by the retry scheduler.
func (q *redisQueue) MarkFailed(ctx context.Context, jobID string) error {
	if err := q.client.ZRem(ctx, ProcessingSetKey, jobID).Err(); err != nil {
		q.logger.Error("Failed to mark job as failed", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark job as failed: %w", err)
	}
	return nil
}

func (q *redisQueue) GetQueueDepth(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, queue).Result()
}

func (q *redisQueue) GetProcessingJobs(ctx context.Context) ([]string, error) {
	return q.client.ZRange(ctx, ProcessingSetKey, 0, -1).Result()
}

func GetQueueKey(priority job.Priority) string {
	return queueKeyPrefix + priority.String()
}

// GetPriorityQueues lists the queue keys from most to least urgent.
func GetPriorityQueues() []string {
	keys := make([]string, 0, len(job.Priorities))
	for _, p := range job.Priorities {
		keys = append(keys, GetQueueKey(p))
	}
	return keys
}
