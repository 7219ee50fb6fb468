package domain

import "time"

// Customer represents the person a card account belongs to. Ownership runs
// Account -> Customer; a customer is referenced by at most one account from
// this core's perspective.
type Customer struct {
	CustomerID   string    `json:"customerID"` // exactly 9 numeric digits
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName"`
	LastName     string    `json:"lastName"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `json:"city"`
	StateCode    string    `json:"stateCode"` // two-letter US state/territory code
	ZIPCode      string    `json:"zipCode"`   // 5 digits, must match the state's prefix ranges
	PhoneNumber  string    `json:"phoneNumber"`
	SSN          string    `json:"ssn"` // AAA-GG-SSSS
	DateOfBirth  time.Time `json:"dateOfBirth"`
	FICOScore    int       `json:"ficoScore"` // 300..850
	AuditFields
}
