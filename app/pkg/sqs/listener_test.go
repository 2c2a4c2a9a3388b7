package sqs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/sqs"
)

// fakeQueue hands out its messages on the first receive and then long-polls
// empty until the context ends.
type fakeQueue struct {
	mu         sync.Mutex
	pending    []types.Message
	deleted    []string
	visibility map[string]int32
}

func newFakeQueue(messages ...types.Message) *fakeQueue {
	return &fakeQueue{pending: messages, visibility: map[string]int32{}}
}

func (f *fakeQueue) SendMessage(context.Context, *awssqs.SendMessageInput, ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error) {
	return &awssqs.SendMessageOutput{MessageId: aws.String("sent")}, nil
}

func (f *fakeQueue) ReceiveMessage(ctx context.Context, _ *awssqs.ReceiveMessageInput, _ ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	messages := f.pending
	f.pending = nil
	f.mu.Unlock()

	if len(messages) > 0 {
		return &awssqs.ReceiveMessageOutput{Messages: messages}, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(20 * time.Millisecond):
		return &awssqs.ReceiveMessageOutput{}, nil
	}
}

func (f *fakeQueue) DeleteMessage(_ context.Context, in *awssqs.DeleteMessageInput, _ ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &awssqs.DeleteMessageOutput{}, nil
}

func (f *fakeQueue) ChangeMessageVisibility(_ context.Context, in *awssqs.ChangeMessageVisibilityInput, _ ...func(*awssqs.Options)) (*awssqs.ChangeMessageVisibilityOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility[aws.ToString(in.ReceiptHandle)] = in.VisibilityTimeout
	return &awssqs.ChangeMessageVisibilityOutput{}, nil
}

func (f *fakeQueue) deletedHandles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func message(id, body string, receiveCount string) types.Message {
	return types.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String("rh-" + id),
		Body:          aws.String(body),
		Attributes:    map[string]string{"ApproximateReceiveCount": receiveCount},
	}
}

func TestListener(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	queue := newFakeQueue(
		message("m1", `{"type":"claim.review_started","payload":{"claim_id":"c1"}}`, "1"),
		message("m2", `{"type":"claim.settled","payload":{"claim_id":"c2","status":"approved"}}`, "1"),
		message("bad-json", `{not json`, "1"),
		message("unknown", `{"type":"claim.archived","payload":{"claim_id":"c3"}}`, "1"),
		message("no-claim", `{"type":"claim.settled","payload":{}}`, "1"),
		message("flaky", `{"type":"claim.review_started","payload":{"claim_id":"c4"}}`, "2"),
		message("dead", `{"type":"claim.review_started","payload":{"claim_id":"c5"}}`, "3"),
	)

	var mu sync.Mutex
	var created []sqs.JobRequest
	creator := sqs.JobCreatorFunc(func(_ context.Context, req sqs.JobRequest) error {
		if req.ExternalID == "flaky" || req.ExternalID == "dead" {
			return errors.New("database unavailable")
		}
		mu.Lock()
		defer mu.Unlock()
		created = append(created, req)
		return nil
	})

	cfg := config.SQSConfig{
		Polling: config.SQSPollingConfig{PollingInterval: 10 * time.Millisecond},
		Message: config.SQSMessageConfig{MaxRetries: 3, BaseRetryDelay: 30 * time.Second, MaxRetryDelay: time.Hour},
	}
	client := sqs.NewClient(queue, cfg, zap.NewNop())
	listener := sqs.NewListener(client, sqs.ListenerConfig{
		QueueURLs: []string{"https://sqs.local/claims", ""},
		Creator:   creator,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.Start(ctx) }()

	require.Eventually(t, func() bool {
		return listener.GetStats().Received == 7
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, listener.IsRunning())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.False(t, listener.IsRunning())

	require.Len(t, created, 2)
	assert.Equal(t, job.ReviewClaim, created[0].Type)
	assert.Equal(t, job.PriorityNormal, created[0].Priority)
	assert.Equal(t, "m1", created[0].ExternalID)
	assert.Equal(t, job.SettleClaim, created[1].Type)
	assert.Equal(t, job.PriorityHigh, created[1].Priority)
	assert.JSONEq(t, `{"claim_id":"c2","status":"approved"}`, string(created[1].Payload))

	assert.ElementsMatch(t,
		[]string{"rh-m1", "rh-m2", "rh-bad-json", "rh-unknown", "rh-no-claim", "rh-dead"},
		queue.deletedHandles())
	assert.Equal(t, map[string]int32{"rh-flaky": 60}, queue.visibility)

	stats := listener.GetStats()
	assert.EqualValues(t, 2, stats.Processed)
	assert.EqualValues(t, 1, stats.Retried)
	assert.EqualValues(t, 4, stats.Dropped)
	assert.Equal(t, []string{"https://sqs.local/claims"}, stats.QueueURLs)
}

func TestListenerWithoutQueue(t *testing.T) {
	client := sqs.NewClient(newFakeQueue(), config.SQSConfig{}, zap.NewNop())
	listener := sqs.NewListener(client, sqs.ListenerConfig{}, zap.NewNop())

	assert.Error(t, listener.Start(context.Background()))
}

func TestParseMessage(t *testing.T) {
	msg, err := sqs.ParseMessage(`{"type":"claim.review_started","payload":{"claim_id":"c1"}}`)
	require.NoError(t, err)
	assert.Equal(t, job.ClaimReviewStarted, msg.Type)

	for _, body := range []string{
		``,
		`{"payload":{"claim_id":"c1"}}`,
		`{"type":"claim.review_started"}`,
		`{"type":"claim.review_started","payload":null}`,
		`{"type":"claim.review_started","payload":[1]}`,
	} {
		_, err := sqs.ParseMessage(body)
		assert.ErrorIs(t, err, sqs.ErrInvalidMessage, body)
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := sqs.WithDefaults(config.SQSConfig{
		Polling: config.SQSPollingConfig{MaxMessages: 25, WaitTimeSeconds: 5},
	})

	assert.Equal(t, 10, cfg.Polling.MaxMessages)
	assert.Equal(t, 5, cfg.Polling.WaitTimeSeconds)
	assert.Equal(t, 300, cfg.Polling.VisibilityTimeoutSeconds)
	assert.Equal(t, 3, cfg.Message.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Message.BaseRetryDelay)
}
