package domain

import "time"

// TransactionType is the two-character legacy type code carried by every
// transaction record.
type TransactionType string

const (
	TranTypePurchase TransactionType = "01"
	TranTypePayment  TransactionType = "02"
	TranTypeInterest TransactionType = "03"
	TranTypeFee      TransactionType = "04"
)

// TransactionCategory is the statement bucket a transaction aggregates into.
type TransactionCategory string

const (
	CategoryPurchases TransactionCategory = "PURCHASES"
	CategoryPayments  TransactionCategory = "PAYMENTS"
	CategoryInterest  TransactionCategory = "INTEREST"
	CategoryFees      TransactionCategory = "FEES"
)

// Category maps a type code to its statement bucket. Codes the legacy system
// never documented default to purchases, matching how the mainframe reports
// aggregated them.
func (t TransactionType) Category() TransactionCategory {
	switch t {
	case TranTypePayment:
		return CategoryPayments
	case TranTypeInterest:
		return CategoryInterest
	case TranTypeFee:
		return CategoryFees
	default:
		return CategoryPurchases
	}
}

// Transaction is a single posted movement on an account. Transactions are
// immutable once persisted.
//
// Amount is a pointer because legacy extracts occasionally carry records with
// no amount at all; such rows are tolerated and skipped during aggregation
// rather than rejected.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	TypeCode      TransactionType `json:"typeCode"`
	Amount        *Money          `json:"amount,omitempty"`
	Description   string          `json:"description"`
	OccurredAt    time.Time       `json:"occurredAt"`
	AuditFields
}

// CategoryTotals aggregates a period's transactions per statement bucket.
type CategoryTotals struct {
	Purchases Money `json:"purchases"`
	Payments  Money `json:"payments"`
	Interest  Money `json:"interest"`
	Fees      Money `json:"fees"`
	Total     Money `json:"total"`
}
