package repositories

import (
	"context"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionsByAccountAndRange retrieves the transactions posted to
	// an account with an occurrence date inside [from, to], ordered by
	// occurrence time.
	FindTransactionsByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// Transactions are immutable once persisted; there is no update operation.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SavePaymentWithBalance persists a payment transaction and the account's
	// new balance atomically: both writes succeed or neither does.
	SavePaymentWithBalance(ctx context.Context, account domain.Account, txn domain.Transaction) error
}

// TransactionRepository combines all transaction-related repository interfaces.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
