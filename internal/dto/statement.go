package dto

import (
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// StatementResponse summarises one billing period for an account. The period
// is the calendar month preceding the statement date.
type StatementResponse struct {
	AccountID         string                `json:"accountID"`
	PeriodStart       string                `json:"periodStart"`
	PeriodEnd         string                `json:"periodEnd"`
	CurrentBalance    domain.Money          `json:"currentBalance"`
	Totals            domain.CategoryTotals `json:"totals"`
	PeriodInterest    domain.Money          `json:"periodInterest"`
	MinimumPaymentDue domain.Money          `json:"minimumPaymentDue"`
	GeneratedAt       time.Time             `json:"generatedAt"`
}
