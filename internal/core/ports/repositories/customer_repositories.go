package repositories

import (
	"context"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// CustomerReader defines read operations for customer data.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by its 9-digit identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepository combines all customer-related repository interfaces.
type CustomerRepository interface {
	CustomerReader
	CustomerWriter
}
