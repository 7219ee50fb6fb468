package services

import (
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	portssvc "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Update  portssvc.AccountUpdateSvc
	Payment portssvc.PaymentSvc
	Billing portssvc.BillingSvc
}

// NewContainer creates a new service container with properly initialized
// dependencies.
func NewContainer(
	accountRepo portsrepo.AccountRepository,
	customerRepo portsrepo.CustomerRepository,
	txnRepo portsrepo.TransactionRepository,
	validator *validation.Validator,
	billingCfg BillingConfig,
) *Container {
	return &Container{
		Update:  NewAccountUpdateService(accountRepo, customerRepo, validator),
		Payment: NewPaymentService(accountRepo, txnRepo),
		Billing: NewBillingService(accountRepo, txnRepo, billingCfg),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.AccountUpdateSvc = (*AccountUpdateService)(nil)
	_ portssvc.PaymentSvc       = (*PaymentService)(nil)
	_ portssvc.BillingSvc       = (*BillingService)(nil)
)
