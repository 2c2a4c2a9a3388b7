package controller

import (
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type Controllers struct {
	ClaimController   *ClaimController
	PolicyController  *PolicyController
	QuoteController   *QuoteController
	ProductController *ProductController
	PaymentController *PaymentController
	UserController    *UserController
	HealthController  *HealthController
}

func NewControllers(managers *manager.Managers, res runtime.Resource) *Controllers {
	return &Controllers{
		ClaimController:   NewClaimController(managers, res),
		PolicyController:  NewPolicyController(managers, res),
		QuoteController:   NewQuoteController(managers, res),
		ProductController: NewProductController(managers, res),
		PaymentController: NewPaymentController(managers, res),
		UserController:    NewUserController(managers, res),
		HealthController:  NewHealthController(managers, res),
	}
}
