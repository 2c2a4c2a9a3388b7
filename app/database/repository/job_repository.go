package repository

import (
	"context"
	"time"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/internal/runtime"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	GetByExternalID(ctx context.Context, externalID string) (*entity.Job, error)
	GetJobsByStatus(ctx context.Context, status job.Status, limit int) ([]*entity.Job, error)
	CountByStatus(ctx context.Context) (map[job.Status]int, error)
	UpdateJobToProcessing(ctx context.Context, id string, startedAt time.Time) error
	UpdateJobToCompleted(ctx context.Context, id string, completedAt time.Time) error
	UpdateJobToFailed(ctx context.Context, id string, errorMsg string) error
	UpdateJobToRetrying(ctx context.Context, id string, errorMsg string, retryAt time.Time) error
	ResetToPending(ctx context.Context, id string) error
	GetRetryableJobs(ctx context.Context, now time.Time, limit int) ([]*entity.Job, error)
}

type jobRepository struct {
	res runtime.Resource
}

func NewJobRepository(res runtime.Resource) JobRepository {
	return &jobRepository{res: res}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	_, err := r.res.DB.NewInsert().Model(job).Exec(ctx)
	return err
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	j := &entity.Job{}
	err := r.res.DB.NewSelect().Model(j).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// GetByExternalID finds the job created for a queue message.
func (r *jobRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.Job, error) {
	j := &entity.Job{}
	err := r.res.DB.NewSelect().
		Model(j).
		Where("external_id = ?", externalID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *jobRepository) GetJobsByStatus(ctx context.Context, status job.Status, limit int) ([]*entity.Job, error) {
	var jobs []*entity.Job
	err := r.res.DB.ReplicaNewSelect().
		Model(&jobs).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	return jobs, err
}

func (r *jobRepository) CountByStatus(ctx context.Context) (map[job.Status]int, error) {
	var rows []struct {
		Status job.Status `bun:"status"`
		Count  int        `bun:"count"`
	}
	err := r.res.DB.ReplicaNewSelect().
		Model((*entity.Job)(nil)).
		Column("status").
		ColumnExpr("COUNT(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[job.Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *jobRepository) UpdateJobToProcessing(ctx context.Context, id string, startedAt time.Time) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.Job)(nil)).
		Set("status = ?", job.Processing).
		Set("started_at = ?", startedAt).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *jobRepository) UpdateJobToCompleted(ctx context.Context, id string, completedAt time.Time) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.Job)(nil)).
		Set("status = ?", job.Completed).
		Set("completed_at = ?", completedAt).
		Set("error = ?", "").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *jobRepository) UpdateJobToFailed(ctx context.Context, id string, errorMsg string) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.Job)(nil)).
		Set("status = ?", job.Failed).
		Set("attempts = attempts + 1").
		Set("error = ?", errorMsg).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// UpdateJobToRetrying records the failed attempt and parks the job until retryAt.
func (r *jobRepository) UpdateJobToRetrying(ctx context.Context, id string, errorMsg string, retryAt time.Time) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.Job)(nil)).
		Set("status = ?", job.Retrying).
		Set("attempts = attempts + 1").
		Set("error = ?", errorMsg).
		Set("scheduled_at = ?", retryAt).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *jobRepository) ResetToPending(ctx context.Context, id string) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.Job)(nil)).
		Set("status = ?", job.Pending).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// GetRetryableJobs lists retrying jobs whose backoff has elapsed.
func (r *jobRepository) GetRetryableJobs(ctx context.Context, now time.Time, limit int) ([]*entity.Job, error) {
	var jobs []*entity.Job
	err := r.res.DB.NewSelect().
		Model(&jobs).
		Where("status = ?", job.Retrying).
		Where("attempts < max_attempts").
		Where("scheduled_at IS NULL OR scheduled_at <= ?", now).
		Order("priority DESC").
		Order("scheduled_at ASC").
		Limit(limit).
		Scan(ctx)
	return jobs, err
}
