package service

import (
	"context"

	"go.uber.org/zap"

	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
	"backend/insurance-platform/app/pkg/sqs"
)

type Services struct {
	WorkerService *WorkerService
	// Nil when no claim event queue is configured
	SQSListenerService *SQSListenerService
	SchedulerService   *SchedulerService
}

func NewServices(res runtime.Resource, managers *manager.Managers, repositories *repository.Repositories) (*Services, error) {
	workerService := NewWorkerService(res, managers, repositories)

	var sqsListenerService *SQSListenerService
	if res.Config.AwsConfig.SQSEnabled() {
		res.Logger.Info("Initializing SQS listener service")
		var err error
		sqsListenerService, err = NewSQSListenerService(res, NewJobCreator(managers.JobManager))
		if err != nil {
			return nil, err
		}
	} else {
		res.Logger.Info("No claim event queue configured, SQS listener disabled")
	}

	schedulerService, err := NewSchedulerService(res, managers)
	if err != nil {
		return nil, err
	}

	return &Services{
		WorkerService:      workerService,
		SQSListenerService: sqsListenerService,
		SchedulerService:   schedulerService,
	}, nil
}

// NewJobCreator turns listener job requests into jobs. The SQS message id
// becomes the job's external id, so a redelivered message maps to one job.
func NewJobCreator(jobs manager.JobManager) sqs.JobCreator {
	return sqs.JobCreatorFunc(func(ctx context.Context, req sqs.JobRequest) error {
		externalID := req.ExternalID
		created, err := jobs.CreateJob(ctx, manager.CreateJobRequest{
			Type:       req.Type,
			Priority:   req.Priority,
			Payload:    req.Payload,
			ExternalID: &externalID,
		})
		if err != nil {
			return err
		}
		zap.L().Debug("Job ready for claim event",
			zap.String("job_id", created.ID),
			zap.String("external_id", externalID))
		return nil
	})
}
