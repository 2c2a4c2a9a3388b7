package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/pkg/queue"
)

func newQueue(t *testing.T) (queue.Queue, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return queue.NewRedisQueueWithTimeout(client, zap.NewNop(), 100*time.Millisecond), client
}

func newJob(id string, priority job.Priority) *entity.Job {
	return &entity.Job{
		ID:          id,
		Type:        job.NotifyClaimStatus,
		Priority:    priority,
		Payload:     entity.JobPayload{"claim_id": "1"},
		MaxAttempts: 3,
		Status:      job.Pending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestDequeueHonoursPriority(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newJob("low", job.PriorityLow)))
	require.NoError(t, q.Enqueue(ctx, newJob("high", job.PriorityHigh)))
	require.NoError(t, q.Enqueue(ctx, newJob("normal", job.PriorityNormal)))

	var order []string
	for i := 0; i < 3; i++ {
		j, err := q.Dequeue(ctx, queue.GetPriorityQueues())
		require.NoError(t, err)
		require.NotNil(t, j)
		order = append(order, j.ID)
	}
	assert.Equal(t, []string{"high", "normal", "low"}, order)
}

func TestDequeueIsFIFOWithinPriority(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, newJob("first", job.PriorityNormal)))
	require.NoError(t, q.Enqueue(ctx, newJob("second", job.PriorityNormal)))

	j, err := q.Dequeue(ctx, queue.GetPriorityQueues())
	require.NoError(t, err)
	assert.Equal(t, "first", j.ID)
	assert.Equal(t, job.NotifyClaimStatus, j.Type)
	assert.Equal(t, "1", j.Payload["claim_id"])
}

func TestDequeueTimesOutEmpty(t *testing.T) {
	q, _ := newQueue(t)

	j, err := q.Dequeue(context.Background(), queue.GetPriorityQueues())
	assert.NoError(t, err)
	assert.Nil(t, j)
}

func TestScheduledJobsWaitUntilDue(t *testing.T) {
	q, client := newQueue(t)
	ctx := context.Background()

	later := time.Now().Add(time.Hour)
	scheduled := newJob("later", job.PriorityHigh)
	scheduled.ScheduledAt = &later
	require.NoError(t, q.Enqueue(ctx, scheduled))

	depth, err := q.GetQueueDepth(ctx, queue.GetQueueKey(job.PriorityHigh))
	require.NoError(t, err)
	assert.Zero(t, depth)

	promoted, err := q.PromoteDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, promoted)

	promoted, err = q.PromoteDue(ctx, later.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	assert.Zero(t, client.ZCard(ctx, queue.ScheduledSetKey).Val())
	depth, err = q.GetQueueDepth(ctx, queue.GetQueueKey(job.PriorityHigh))
	require.NoError(t, err)
	assert.EqualValues(t, 1, depth)
}

func TestProcessingMarkers(t *testing.T) {
	q, _ := newQueue(t)
	ctx := context.Background()

	require.NoError(t, q.MarkProcessing(ctx, "a"))
	require.NoError(t, q.MarkProcessing(ctx, "b"))

	ids, err := q.GetProcessingJobs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, q.MarkCompleted(ctx, "a"))
	require.NoError(t, q.MarkFailed(ctx, "b"))

	ids, err = q.GetProcessingJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetPriorityQueues(t *testing.T) {
	assert.Equal(t, []string{
		"{jobs}:queue:critical",
		"{jobs}:queue:high",
		"{jobs}:queue:normal",
		"{jobs}:queue:low",
	}, queue.GetPriorityQueues())
}
