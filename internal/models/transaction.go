package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a posted transaction.
// Amount is nullable: legacy extracts occasionally carry records without one.
type Transaction struct {
	TransactionID string
	AccountID     string
	TypeCode      string // char(2)
	Amount        *decimal.Decimal
	Description   string
	OccurredAt    time.Time
	AuditFields
}
