package repositories

import (
	"context"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its 11-digit identifier.
	// Absence is reported as apperrors.ErrNotFound, distinguishable from a
	// found-but-invalid record.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountCustomerWriter persists an account and its customer as one atomic
// write. The commit-time conflict check is only sound when the guarded-field
// comparison and both writes happen inside the same transaction, so the
// as-read snapshot travels with the write.
type AccountCustomerWriter interface {
	// UpdateAccountAndCustomer re-reads both records under lock, refuses the
	// write with apperrors.ErrConflict when any guarded field diverged from
	// asRead (returning the diverged field names), and otherwise persists
	// both records before committing.
	UpdateAccountAndCustomer(ctx context.Context, account domain.Account, customer domain.Customer, asRead domain.RecordSnapshot) ([]string, error)
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountCustomerWriter
}
