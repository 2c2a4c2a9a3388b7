package worker

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/entity"
)

type JobHandler interface {
	Handle(ctx context.Context, job *entity.Job) error
	GetType() job.Type
}

type JobHandlerRegistry interface {
	Register(handler JobHandler)
	Get(jobType job.Type) (JobHandler, bool)
	GetAll() map[job.Type]JobHandler
}

type jobHandlerRegistry struct {
	handlers map[job.Type]JobHandler
	logger   *zap.Logger
}

func NewJobHandlerRegistry(logger *zap.Logger) JobHandlerRegistry {
	return &jobHandlerRegistry{
		handlers: make(map[job.Type]JobHandler),
		logger:   logger,
	}
}

func (r *jobHandlerRegistry) Register(handler JobHandler) {
	jobType := handler.GetType()
	r.handlers[jobType] = handler
	r.logger.Debug("Registered job handler", zap.String("type", jobType.String()))
}

func (r *jobHandlerRegistry) Get(jobType job.Type) (JobHandler, bool) {
	handler, exists := r.handlers[jobType]
	return handler, exists
}

func (r *jobHandlerRegistry) GetAll() map[job.Type]JobHandler {
	return r.handlers
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

// Permanent wraps err so the pool fails the job without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
