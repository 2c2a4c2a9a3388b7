package integration

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/pkg/sqs"
	"backend/insurance-platform/app/service"
)

type stubQueue struct {
	mu       sync.Mutex
	messages []types.Message
	deleted  int
}

func (q *stubQueue) SendMessage(context.Context, *awssqs.SendMessageInput, ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error) {
	return &awssqs.SendMessageOutput{}, nil
}

func (q *stubQueue) ReceiveMessage(ctx context.Context, _ *awssqs.ReceiveMessageInput, _ ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error) {
	q.mu.Lock()
	messages := q.messages
	q.messages = nil
	q.mu.Unlock()
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

func (q *stubQueue) DeleteMessage(context.Context, *awssqs.DeleteMessageInput, ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted++
	return &awssqs.DeleteMessageOutput{}, nil
}

func (q *stubQueue) ChangeMessageVisibility(context.Context, *awssqs.ChangeMessageVisibilityInput, ...func(*awssqs.Options)) (*awssqs.ChangeMessageVisibilityOutput, error) {
	return &awssqs.ChangeMessageVisibilityOutput{}, nil
}

func (q *stubQueue) deletedCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.deleted
}

func (s *RouterSuite) TestRedeliveredEventCreatesOneJob() {
	body := `{"type":"claim.settled","payload":{"claim_id":"1","status":"approved"}}`
	queue := &stubQueue{messages: []types.Message{
		{MessageId: aws.String("evt-1"), ReceiptHandle: aws.String("rh-1"), Body: aws.String(body)},
		{MessageId: aws.String("evt-1"), ReceiptHandle: aws.String("rh-2"), Body: aws.String(body)},
	}}

	client := sqs.NewClient(queue, s.resource.Config.AwsConfig.Sqs, s.resource.Logger)
	listener := sqs.NewListener(client, sqs.ListenerConfig{
		QueueURLs: []string{"claim-events"},
		Creator:   service.NewJobCreator(s.managers.JobManager),
	}, s.resource.Logger)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- listener.Start(ctx) }()

	s.r.Eventually(func() bool { return queue.deletedCount() == 2 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	<-done

	jobs, err := s.managers.JobManager.GetJobsByStatus(s.ctx, job.Pending, 10)
	s.r.NoError(err)
	s.r.Len(jobs, 1)
	s.a.Equal(job.SettleClaim, jobs[0].Type)
	s.r.NotNil(jobs[0].ExternalID)
	s.a.Equal("evt-1", *jobs[0].ExternalID)
	s.a.EqualValues(2, listener.GetStats().Processed)
}
