package services

import (
	"context"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
)

// AccountUpdateSvc orchestrates validated, conflict-checked account/customer
// mutations.
type AccountUpdateSvc interface {
	// UpdateAccount runs field validation, the state-dependent business
	// rules and the optimistic concurrency check, then persists both records
	// atomically. Rule failures come back inside the result; only
	// infrastructure failures are returned as errors.
	UpdateAccount(ctx context.Context, req dto.AccountUpdateRequest, actorID string) (*dto.AccountUpdateResult, error)
}

// PaymentSvc validates and posts bill payments.
type PaymentSvc interface {
	// ProcessPayment validates the request in a fixed check order, computes
	// the new balance and persists balance and transaction atomically.
	ProcessPayment(ctx context.Context, req dto.PaymentRequest, actorID string) (*dto.PaymentResult, error)
}

// BillingSvc derives statements from an account's balance and period
// transactions.
type BillingSvc interface {
	// GenerateStatement assembles the statement for the calendar month
	// preceding statementDate. Identity failures (malformed, unknown or
	// inactive account) are reported before any computation runs.
	GenerateStatement(ctx context.Context, accountID string, statementDate time.Time) (*dto.StatementResponse, error)
}
