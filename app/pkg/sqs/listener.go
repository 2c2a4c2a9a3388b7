package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/pkg/worker"
)

const receiveCountAttribute = string(types.MessageSystemAttributeNameApproximateReceiveCount)

// JobRequest is a job derived from one queue message.
type JobRequest struct {
	Type     job.Type
	Priority job.Priority
	Payload  json.RawMessage
	// SQS message id; redeliveries of a message carry the same id
	ExternalID string
}

type JobCreator interface {
	CreateJob(ctx context.Context, req JobRequest) error
}

type JobCreatorFunc func(ctx context.Context, req JobRequest) error

func (f JobCreatorFunc) CreateJob(ctx context.Context, req JobRequest) error {
	return f(ctx, req)
}

// Listener manages SQS message polling and turns claim events into jobs
type Listener struct {
	client      *Client
	creator     JobCreator
	logger      *zap.Logger
	queueURLs   []string
	workerCount int

	mu      sync.RWMutex
	running bool
	stats   ListenerStats
}

// ListenerConfig defines configuration for the SQS listener
type ListenerConfig struct {
	QueueURLs   []string
	WorkerCount int
	Creator     JobCreator
}

func NewListener(client *Client, listenerConfig ListenerConfig, logger *zap.Logger) *Listener {
	workerCount := listenerConfig.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
	}

	var queueURLs []string
	for _, url := range listenerConfig.QueueURLs {
		if url != "" {
			queueURLs = append(queueURLs, url)
		}
	}

	return &Listener{
		client:      client,
		creator:     listenerConfig.Creator,
		logger:      logger.With(zap.String("component", "sqs_listener")),
		queueURLs:   queueURLs,
		workerCount: workerCount,
	}
}

// Start polls every queue until ctx is cancelled and returns once all
// pollers have exited.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return fmt.Errorf("listener is already running")
	}
	if len(l.queueURLs) == 0 {
		l.mu.Unlock()
		return fmt.Errorf("no queue URL configured")
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	l.logger.Info("Starting SQS listener",
		zap.Strings("queue_urls", l.queueURLs),
		zap.Int("worker_count", l.workerCount))

	var wg sync.WaitGroup
	for _, queueURL := range l.queueURLs {
		for i := 0; i < l.workerCount; i++ {
			wg.Add(1)
			go func(queueURL string, workerID int) {
				defer wg.Done()
				l.runWorker(ctx, queueURL, workerID)
			}(queueURL, i)
		}
	}

	wg.Wait()
	l.logger.Info("SQS listener stopped")
	return nil
}

func (l *Listener) runWorker(ctx context.Context, queueURL string, workerID int) {
	workerLogger := l.logger.With(
		zap.String("queue_url", queueURL),
		zap.Int("worker_id", workerID))

	workerLogger.Debug("Starting SQS worker")

	for ctx.Err() == nil {
		received, err := l.pollMessages(ctx, queueURL, workerLogger)
		if err != nil && ctx.Err() == nil {
			workerLogger.Error("Error polling messages", zap.Error(err))
		}

		// Long polling already waits on the server; only pause after errors or empty receives
		if err != nil || received == 0 {
			select {
			case <-time.After(l.client.Config().Polling.PollingInterval):
			case <-ctx.Done():
			}
		}
	}

	workerLogger.Debug("Worker stopping")
}

func (l *Listener) pollMessages(ctx context.Context, queueURL string, logger *zap.Logger) (int, error) {
	output, err := l.client.ReceiveMessages(ctx, queueURL)
	if err != nil {
		return 0, fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, message := range output.Messages {
		l.processMessage(ctx, queueURL, message, logger)
	}
	return len(output.Messages), nil
}

func (l *Listener) processMessage(ctx context.Context, queueURL string, message types.Message, logger *zap.Logger) {
	messageID := getMessageID(message)
	logger = logger.With(zap.String("message_id", messageID))
	l.count(func(s *ListenerStats) { s.Received++ })

	if message.Body == nil || message.ReceiptHandle == nil {
		logger.Warn("Dropping message without body or receipt handle")
		l.count(func(s *ListenerStats) { s.Dropped++ })
		return
	}

	msg, err := ParseMessage(*message.Body)
	if err != nil {
		logger.Warn("Dropping invalid message", zap.Error(err))
		l.count(func(s *ListenerStats) { s.Dropped++ })
		_ = l.deleteMessage(ctx, queueURL, *message.ReceiptHandle, logger)
		return
	}

	req := JobRequest{
		Type:       msg.Type.ToJobType(),
		Priority:   msg.Type.ToPriority(),
		Payload:    msg.Payload,
		ExternalID: messageID,
	}
	logger = logger.With(zap.String("event_type", msg.Type.String()), zap.String("job_type", req.Type.String()))

	if err := l.creator.CreateJob(ctx, req); err != nil {
		l.handleFailure(ctx, queueURL, message, err, logger)
		return
	}

	if err := l.deleteMessage(ctx, queueURL, *message.ReceiptHandle, logger); err != nil {
		// The job exists; a redelivery resolves to it through the message id
		return
	}

	l.count(func(s *ListenerStats) { s.Processed++ })
	logger.Info("Claim event turned into job")
}

// handleFailure hides the message for a growing delay until the retry budget
// is spent, then drops it.
func (l *Listener) handleFailure(ctx context.Context, queueURL string, message types.Message, cause error, logger *zap.Logger) {
	cfg := l.client.Config().Message
	receiveCount := getReceiveCount(message)

	if receiveCount >= cfg.MaxRetries {
		logger.Error("Dropping message after exhausting retries",
			zap.Int("receive_count", receiveCount),
			zap.Error(cause))
		l.count(func(s *ListenerStats) { s.Dropped++ })
		_ = l.deleteMessage(ctx, queueURL, *message.ReceiptHandle, logger)
		return
	}

	delay := worker.RetryDelay(cfg.BaseRetryDelay, cfg.MaxRetryDelay, receiveCount)
	seconds := int32(min(delay/time.Second, maxVisibilitySeconds))

	logger.Warn("Failed to create job, message will be redelivered",
		zap.Int("receive_count", receiveCount),
		zap.Int32("retry_in_seconds", seconds),
		zap.Error(cause))
	l.count(func(s *ListenerStats) { s.Retried++ })

	if err := l.client.ChangeMessageVisibility(ctx, queueURL, *message.ReceiptHandle, seconds); err != nil {
		logger.Error("Failed to delay message", zap.Error(err))
	}
}

func (l *Listener) deleteMessage(ctx context.Context, queueURL, receiptHandle string, logger *zap.Logger) error {
	if err := l.client.DeleteMessage(ctx, queueURL, receiptHandle); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("Failed to delete message", zap.Error(err))
		}
		return err
	}
	return nil
}

func (l *Listener) count(update func(*ListenerStats)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	update(&l.stats)
}

func (l *Listener) IsRunning() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.running
}

func (l *Listener) GetStats() ListenerStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := l.stats
	stats.Running = l.running
	stats.QueueURLs = l.queueURLs
	stats.WorkerCount = l.workerCount
	return stats
}

type ListenerStats struct {
	Running     bool     `json:"running"`
	QueueURLs   []string `json:"queue_urls"`
	WorkerCount int      `json:"worker_count"`
	Received    int64    `json:"received"`
	Processed   int64    `json:"processed"`
	Retried     int64    `json:"retried"`
	Dropped     int64    `json:"dropped"`
}

func getMessageID(message types.Message) string {
	if message.MessageId != nil {
		return *message.MessageId
	}
	return "unknown"
}

// getReceiveCount defaults to 1: a received message has been delivered at least once.
func getReceiveCount(message types.Message) int {
	count, err := strconv.Atoi(message.Attributes[receiveCountAttribute])
	if err != nil || count < 1 {
		return 1
	}
	return count
}
