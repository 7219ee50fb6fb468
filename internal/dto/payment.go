package dto

import (
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
)

// PaymentRequest is the bill-payment request shape. Amount stays a string so
// the processor can report structural problems (sign, fractional digits) as
// field errors in its own check order.
type PaymentRequest struct {
	AccountID string `json:"accountID"`
	Amount    string `json:"amount" binding:"required,money2dp"`
	// Confirmed must be set by the caller before any funds move.
	Confirmed bool `json:"confirmed"`
}

// TransactionResponse mirrors domain.Transaction on the wire.
type TransactionResponse struct {
	TransactionID string        `json:"transactionID"`
	AccountID     string        `json:"accountID"`
	TypeCode      string        `json:"typeCode"`
	Amount        *domain.Money `json:"amount,omitempty"`
	Description   string        `json:"description"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// PaymentResult is the structured outcome of a payment attempt.
type PaymentResult struct {
	Success     bool                    `json:"success"`
	ErrorCode   string                  `json:"errorCode,omitempty"`
	Failures    []validation.FieldError `json:"failures,omitempty"`
	Account     *AccountResponse        `json:"account,omitempty"`
	Transaction *TransactionResponse    `json:"transaction,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its wire shape.
func ToTransactionResponse(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		TypeCode:      string(t.TypeCode),
		Amount:        t.Amount,
		Description:   t.Description,
		OccurredAt:    t.OccurredAt,
	}
}
