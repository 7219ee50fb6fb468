package models

import "time"

// Customer is the database representation of a card customer.
type Customer struct {
	CustomerID   string // char(9)
	FirstName    string
	MiddleName   string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	StateCode    string // char(2)
	ZIPCode      string // char(5)
	PhoneNumber  string
	SSN          string // char(11), AAA-GG-SSSS
	DateOfBirth  time.Time
	FICOScore    int
	AuditFields
}
