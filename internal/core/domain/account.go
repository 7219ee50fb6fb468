package domain

import "time"

// AccountStatus is the lifecycle status of a card account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// IsValid reports whether s is one of the recognised statuses.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountSuspended:
		return true
	}
	return false
}

// Account represents a card account within the core domain.
// Accounts are created by the onboarding flow, mutated only through the
// update orchestration path and never hard-deleted; closing an account is a
// status transition.
type Account struct {
	AccountID       string        `json:"accountID"` // exactly 11 numeric digits
	Status          AccountStatus `json:"status"`
	CurrentBalance  Money         `json:"currentBalance"`
	CreditLimit     Money         `json:"creditLimit"`
	CashCreditLimit Money         `json:"cashCreditLimit"` // 0 <= cash <= credit
	ExpiryDate      time.Time     `json:"expiryDate"`      // date only, UTC midnight
	CustomerID      string        `json:"customerID"`      // owning customer, exactly 9 digits
	AuditFields
}
