package manager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	util "backend/insurance-platform/app/database/repository/query_utils"
	"backend/insurance-platform/app/pkg/queue"
)

const defaultMaxAttempts = 3

type JobManager interface {
	CreateJob(ctx context.Context, req CreateJobRequest) (*entity.Job, error)
	GetJob(ctx context.Context, id string) (*entity.Job, error)
	GetJobsByStatus(ctx context.Context, status job.Status, limit int) ([]*entity.Job, error)
	CountByStatus(ctx context.Context) (map[job.Status]int, error)
}

type CreateJobRequest struct {
	Type     job.Type     `json:"type"`
	Priority job.Priority `json:"priority"`
	// Any value that marshals to a JSON object
	Payload     any        `json:"payload"`
	MaxAttempts int        `json:"max_attempts,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	// Message id of the event that produced the job. A second request with the
	// same id returns the job created by the first.
	ExternalID *string `json:"external_id,omitempty"`
}

type jobManager struct {
	jobRepo repository.JobRepository
	queue   queue.Queue
	logger  *zap.Logger
	now     func() time.Time
}

func NewJobManager(
	jobRepo repository.JobRepository,
	queue queue.Queue,
	logger *zap.Logger,
) JobManager {
	return &jobManager{
		jobRepo: jobRepo,
		queue:   queue,
		logger:  logger.With(zap.String("component", "job_manager")),
		now:     time.Now,
	}
}

func (m *jobManager) CreateJob(ctx context.Context, req CreateJobRequest) (*entity.Job, error) {
	if req.Type == "" {
		return nil, fmt.Errorf("job type is required")
	}

	if req.ExternalID != nil {
		existing, err := m.jobRepo.GetByExternalID(ctx, *req.ExternalID)
		if err == nil {
			m.logger.Info("Job already created for message", zap.String("external_id", *req.ExternalID))
			return existing, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to look up job by external id: %w", err)
		}
	}

	if req.MaxAttempts <= 0 {
		req.MaxAttempts = defaultMaxAttempts
	}

	payload := entity.JobPayload{}
	if req.Payload != nil {
		var err error
		if payload, err = entity.NewJobPayload(req.Payload); err != nil {
			return nil, fmt.Errorf("invalid job payload: %w", err)
		}
	}

	jobEntity := &entity.Job{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Priority:    req.Priority,
		Payload:     payload,
		MaxAttempts: req.MaxAttempts,
		ExternalID:  req.ExternalID,
		CreatedAt:   m.now().UTC(),
		ScheduledAt: req.ScheduledAt,
		Status:      job.Pending,
	}

	if err := m.jobRepo.Create(ctx, jobEntity); err != nil {
		if req.ExternalID != nil && util.IsUniqueViolation(err) {
			return m.jobRepo.GetByExternalID(ctx, *req.ExternalID)
		}
		m.logger.Error("Failed to create job in database",
			zap.String("job_id", jobEntity.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := m.queue.Enqueue(ctx, jobEntity); err != nil {
		// The row stays pending; mark it retrying so the retry scheduler picks it up.
		m.logger.Error("Failed to enqueue job",
			zap.String("job_id", jobEntity.ID),
			zap.Error(err))
		if rerr := m.jobRepo.UpdateJobToRetrying(ctx, jobEntity.ID, err.Error(), m.now().UTC()); rerr != nil {
			m.logger.Error("Failed to mark job for retry", zap.String("job_id", jobEntity.ID), zap.Error(rerr))
		}
		return jobEntity, nil
	}

	m.logger.Info("Job created",
		zap.String("job_id", jobEntity.ID),
		zap.String("type", jobEntity.Type.String()),
		zap.String("priority", jobEntity.Priority.String()))

	return jobEntity, nil
}

func (m *jobManager) GetJob(ctx context.Context, id string) (*entity.Job, error) {
	return m.jobRepo.GetByID(ctx, id)
}

func (m *jobManager) GetJobsByStatus(ctx context.Context, status job.Status, limit int) ([]*entity.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return m.jobRepo.GetJobsByStatus(ctx, status, limit)
}

func (m *jobManager) CountByStatus(ctx context.Context) (map[job.Status]int, error) {
	return m.jobRepo.CountByStatus(ctx)
}
