package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// Account is the database representation of a card account.
type Account struct {
	AccountID       string // char(11)
	Status          string
	CurrentBalance  decimal.Decimal // numeric(12,2)
	CreditLimit     decimal.Decimal // numeric(12,2)
	CashCreditLimit decimal.Decimal // numeric(12,2)
	ExpiryDate      time.Time       // date
	CustomerID      string          // char(9), FK -> customers
	AuditFields
}
