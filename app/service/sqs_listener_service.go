package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/sqs"
)

type SQSListenerService struct {
	listener *sqs.Listener
	logger   *zap.Logger
}

func NewSQSListenerService(res runtime.Resource, creator sqs.JobCreator) (*SQSListenerService, error) {
	if res.SqsClient == nil {
		return nil, fmt.Errorf("claim event queue is configured but no SQS client was created")
	}
	logger := res.Logger.With(zap.String("component", "sqs_listener_service"))

	client := sqs.NewClient(res.SqsClient, res.Config.AwsConfig.Sqs, res.Logger)
	listener := sqs.NewListener(client, sqs.ListenerConfig{
		QueueURLs:   []string{res.Config.AwsConfig.Sqs.QueueURLs.ClaimEventQueue},
		WorkerCount: 1,
		Creator:     creator,
	}, res.Logger)

	return &SQSListenerService{
		listener: listener,
		logger:   logger,
	}, nil
}

// Start blocks until ctx is cancelled and every poller has returned.
func (s *SQSListenerService) Start(ctx context.Context) error {
	s.logger.Info("Starting SQS listener service")
	if err := s.listener.Start(ctx); err != nil {
		return fmt.Errorf("sqs listener: %w", err)
	}
	s.logger.Info("SQS listener service stopped")
	return nil
}

func (s *SQSListenerService) GetStats() sqs.ListenerStats {
	return s.listener.GetStats()
}

func (s *SQSListenerService) IsRunning() bool {
	return s.listener.IsRunning()
}

