package domain

import "time"

// AccountSnapshot captures the guarded account fields of a record as of a
// point in time. It is used only transiently for conflict detection and is
// never persisted.
type AccountSnapshot struct {
	Status          AccountStatus
	CreditLimit     Money
	CashCreditLimit Money
	ExpiryDate      time.Time
}

// CustomerSnapshot captures the guarded customer fields.
type CustomerSnapshot struct {
	FirstName    string
	MiddleName   string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	StateCode    string
	ZIPCode      string
	PhoneNumber  string
	SSN          string
	DateOfBirth  time.Time
	FICOScore    int
}

// RecordSnapshot pairs the guarded fields of an account and its customer.
// Two of these, one taken at read time and one at commit time, drive the
// optimistic concurrency check.
type RecordSnapshot struct {
	Account  AccountSnapshot
	Customer CustomerSnapshot
}

// SnapshotOf extracts the guarded fields from a persisted account/customer pair.
func SnapshotOf(a Account, c Customer) RecordSnapshot {
	return RecordSnapshot{
		Account: AccountSnapshot{
			Status:          a.Status,
			CreditLimit:     a.CreditLimit,
			CashCreditLimit: a.CashCreditLimit,
			ExpiryDate:      a.ExpiryDate,
		},
		Customer: CustomerSnapshot{
			FirstName:    c.FirstName,
			MiddleName:   c.MiddleName,
			LastName:     c.LastName,
			AddressLine1: c.AddressLine1,
			AddressLine2: c.AddressLine2,
			City:         c.City,
			StateCode:    c.StateCode,
			ZIPCode:      c.ZIPCode,
			PhoneNumber:  c.PhoneNumber,
			SSN:          c.SSN,
			DateOfBirth:  c.DateOfBirth,
			FICOScore:    c.FICOScore,
		},
	}
}

// Diff returns the names of every guarded field whose value differs between
// the two snapshots. An empty result means the record is unchanged.
func (s RecordSnapshot) Diff(other RecordSnapshot) []string {
	var diverged []string

	if s.Account.Status != other.Account.Status {
		diverged = append(diverged, "account.status")
	}
	if !s.Account.CreditLimit.Equal(other.Account.CreditLimit) {
		diverged = append(diverged, "account.creditLimit")
	}
	if !s.Account.CashCreditLimit.Equal(other.Account.CashCreditLimit) {
		diverged = append(diverged, "account.cashCreditLimit")
	}
	if !s.Account.ExpiryDate.Equal(other.Account.ExpiryDate) {
		diverged = append(diverged, "account.expiryDate")
	}

	if s.Customer.FirstName != other.Customer.FirstName {
		diverged = append(diverged, "customer.firstName")
	}
	if s.Customer.MiddleName != other.Customer.MiddleName {
		diverged = append(diverged, "customer.middleName")
	}
	if s.Customer.LastName != other.Customer.LastName {
		diverged = append(diverged, "customer.lastName")
	}
	if s.Customer.AddressLine1 != other.Customer.AddressLine1 {
		diverged = append(diverged, "customer.addressLine1")
	}
	if s.Customer.AddressLine2 != other.Customer.AddressLine2 {
		diverged = append(diverged, "customer.addressLine2")
	}
	if s.Customer.City != other.Customer.City {
		diverged = append(diverged, "customer.city")
	}
	if s.Customer.StateCode != other.Customer.StateCode {
		diverged = append(diverged, "customer.stateCode")
	}
	if s.Customer.ZIPCode != other.Customer.ZIPCode {
		diverged = append(diverged, "customer.zipCode")
	}
	if s.Customer.PhoneNumber != other.Customer.PhoneNumber {
		diverged = append(diverged, "customer.phoneNumber")
	}
	if s.Customer.SSN != other.Customer.SSN {
		diverged = append(diverged, "customer.ssn")
	}
	if !s.Customer.DateOfBirth.Equal(other.Customer.DateOfBirth) {
		diverged = append(diverged, "customer.dateOfBirth")
	}
	if s.Customer.FICOScore != other.Customer.FICOScore {
		diverged = append(diverged, "customer.ficoScore")
	}

	return diverged
}
