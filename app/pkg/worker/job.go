package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

// TaskIDKey carries the id of the scheduler job a task runs for.
const TaskIDKey ctxutil.ContextKey[uuid.UUID] = "scheduled_task_id"

const maxJobPoolSize = 64

type scheduledJob struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// JobPool tracks the cancel func of every registered scheduler job.
type JobPool struct {
	jobs map[uuid.UUID]*scheduledJob
	mu   *sync.RWMutex
}

func NewJobPool() JobPool {
	return JobPool{
		jobs: make(map[uuid.UUID]*scheduledJob, maxJobPoolSize),
		mu:   &sync.RWMutex{},
	}
}

func (jp *JobPool) NewJob(ctx context.Context, taskID uuid.UUID) context.Context {
	// Tasks outlive the call that registered them
	ctx = context.WithoutCancel(ctx)
	ctx = TaskIDKey.Set(ctx, taskID)
	ctx, cancel := context.WithCancel(ctx)

	jp.mu.Lock()
	defer jp.mu.Unlock()
	jp.jobs[taskID] = &scheduledJob{ctx: ctx, cancel: cancel}
	return ctx
}

func (jp JobPool) IsJobValid(jobID uuid.UUID) bool {
	jp.mu.RLock()
	defer jp.mu.RUnlock()
	_, ok := jp.jobs[jobID]
	return ok
}

func (jp *JobPool) StopJob(jobID uuid.UUID) {
	jp.mu.Lock()
	defer jp.mu.Unlock()
	if job, ok := jp.jobs[jobID]; ok {
		job.cancel()
		delete(jp.jobs, jobID)
	}
}

func (jp *JobPool) StopAllJobs() {
	jp.mu.Lock()
	defer jp.mu.Unlock()
	for _, job := range jp.jobs {
		job.cancel()
	}
	jp.jobs = make(map[uuid.UUID]*scheduledJob, maxJobPoolSize)
}
