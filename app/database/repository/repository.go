package repository

import (
	"backend/insurance-platform/app/internal/runtime"
)

type Repositories struct {
	UserRepository            UserRepository
	ClaimRepository           ClaimRepository
	PolicyRepository          PolicyRepository
	QuoteRepository           QuoteRepository
	ProductRepository         ProductRepository
	PaymentRepository         PaymentRepository
	PaymentMethodRepository   PaymentMethodRepository
	UpcomingPaymentRepository UpcomingPaymentRepository
	JobRepository             JobRepository
}

func NewRepositories(res runtime.Resource) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(res),
		ClaimRepository:           NewClaimRepository(res),
		PolicyRepository:          NewPolicyRepository(res),
		QuoteRepository:           NewQuoteRepository(res),
		ProductRepository:         NewProductRepository(res),
		PaymentRepository:         NewPaymentRepository(res),
		PaymentMethodRepository:   NewPaymentMethodRepository(res),
		UpcomingPaymentRepository: NewUpcomingPaymentRepository(res),
		JobRepository:             NewJobRepository(res),
	}
}
