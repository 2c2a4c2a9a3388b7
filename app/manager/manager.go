package manager

import (
	"time"

	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/queue"
)

type Managers struct {
	ClaimManager      ClaimManager
	PolicyManager     PolicyManager
	QuoteManager      QuoteManager
	ProductManager    ProductManager
	ComparisonManager ComparisonManager
	PaymentManager    PaymentManager
	UserManager       UserManager
	JobManager        JobManager
}

type options struct {
	now   func() time.Time
	queue queue.Queue
}

type Option func(*options)

// WithClock replaces time.Now for every manager.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithQueue overrides the redis job queue built from res.Redis.
func WithQueue(q queue.Queue) Option {
	return func(o *options) {
		o.queue = q
	}
}

func NewManagers(
	res runtime.Resource,
	repositories *repository.Repositories,
	opts ...Option,
) *Managers {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queue == nil {
		o.queue = queue.NewRedisQueue(res.Redis.GetUniversalClient(), res.Logger)
	}

	jobs := NewJobManager(repositories.JobRepository, o.queue, res.Logger)
	if jm, ok := jobs.(*jobManager); ok {
		jm.now = o.now
	}

	return &Managers{
		ClaimManager:      NewClaimManager(res, repositories, jobs, o.now),
		PolicyManager:     NewPolicyManager(res, repositories, o.now),
		QuoteManager:      NewQuoteManager(res, repositories, o.now),
		ProductManager:    NewProductManager(res, repositories),
		ComparisonManager: NewComparisonManager(res, repositories),
		PaymentManager:    NewPaymentManager(res, repositories, o.now),
		UserManager:       NewUserManager(res, repositories, o.now),
		JobManager:        jobs,
	}
}
