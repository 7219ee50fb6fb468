package dto

import (
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
)

// dateLayout is the wire format for all date-only fields.
const dateLayout = "2006-01-02"

// AccountFieldsDTO carries the editable account attributes.
type AccountFieldsDTO struct {
	Status          string       `json:"status" binding:"required"`
	CreditLimit     domain.Money `json:"creditLimit"`
	CashCreditLimit domain.Money `json:"cashCreditLimit"`
	ExpiryDate      string       `json:"expiryDate" binding:"required"`
}

// CustomerFieldsDTO carries the editable customer attributes.
type CustomerFieldsDTO struct {
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	StateCode    string `json:"stateCode"`
	ZIPCode      string `json:"zipCode"`
	PhoneNumber  string `json:"phoneNumber"`
	SSN          string `json:"ssn"`
	DateOfBirth  string `json:"dateOfBirth"`
	FICOScore    int    `json:"ficoScore"`
}

// RecordStateDTO is a full account+customer field set, used both for the
// edited values and for the as-read snapshot the caller captured when it
// loaded the record.
type RecordStateDTO struct {
	Account  AccountFieldsDTO  `json:"account" binding:"required"`
	Customer CustomerFieldsDTO `json:"customer" binding:"required"`
}

// AccountUpdateRequest is the mutation request shape of the update
// orchestration path.
type AccountUpdateRequest struct {
	AccountID string         `json:"accountID" binding:"required"`
	Edited    RecordStateDTO `json:"edited" binding:"required"`
	AsRead    RecordStateDTO `json:"asRead" binding:"required"`
}

// AccountResponse mirrors domain.Account on the wire.
type AccountResponse struct {
	AccountID       string       `json:"accountID"`
	Status          string       `json:"status"`
	CurrentBalance  domain.Money `json:"currentBalance"`
	CreditLimit     domain.Money `json:"creditLimit"`
	CashCreditLimit domain.Money `json:"cashCreditLimit"`
	ExpiryDate      string       `json:"expiryDate"`
	CustomerID      string       `json:"customerID"`
}

// CustomerResponse mirrors domain.Customer on the wire.
type CustomerResponse struct {
	CustomerID   string `json:"customerID"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	StateCode    string `json:"stateCode"`
	ZIPCode      string `json:"zipCode"`
	PhoneNumber  string `json:"phoneNumber"`
	SSN          string `json:"ssn"`
	DateOfBirth  string `json:"dateOfBirth"`
	FICOScore    int    `json:"ficoScore"`
}

// AuditDTO mirrors domain.AuditRecord on the wire.
type AuditDTO struct {
	At      time.Time            `json:"at"`
	ActorID string               `json:"actorID"`
	Changes []domain.FieldChange `json:"changes"`
}

// AccountUpdateResult is the structured outcome of an update attempt: either
// a success with the updated snapshot and an audit trail, or a failure with a
// stable code and the complete list of field problems.
type AccountUpdateResult struct {
	Success   bool                    `json:"success"`
	ErrorCode string                  `json:"errorCode,omitempty"`
	Failures  []validation.FieldError `json:"failures,omitempty"`
	Account   *AccountResponse        `json:"account,omitempty"`
	Customer  *CustomerResponse       `json:"customer,omitempty"`
	Audit     *AuditDTO               `json:"audit,omitempty"`
}

// ToDomainAccount builds an account candidate from the DTO fields. Parse
// problems come back as field errors so they aggregate with the rule set
// instead of aborting the request.
func (f AccountFieldsDTO) ToDomainAccount(accountID, customerID string, fieldPrefix string) (domain.Account, []validation.FieldError) {
	var errs []validation.FieldError
	account := domain.Account{
		AccountID:       accountID,
		Status:          domain.AccountStatus(f.Status),
		CreditLimit:     f.CreditLimit,
		CashCreditLimit: f.CashCreditLimit,
		CustomerID:      customerID,
	}
	if exp, err := time.Parse(dateLayout, f.ExpiryDate); err != nil {
		errs = append(errs, validation.FieldError{Field: fieldPrefix + "expiryDate", Message: "must be a date in YYYY-MM-DD format"})
	} else {
		account.ExpiryDate = exp
	}
	return account, errs
}

// ToDomainCustomer builds a customer candidate from the DTO fields.
func (f CustomerFieldsDTO) ToDomainCustomer(customerID, fieldPrefix string) (domain.Customer, []validation.FieldError) {
	var errs []validation.FieldError
	customer := domain.Customer{
		CustomerID:   customerID,
		FirstName:    f.FirstName,
		MiddleName:   f.MiddleName,
		LastName:     f.LastName,
		AddressLine1: f.AddressLine1,
		AddressLine2: f.AddressLine2,
		City:         f.City,
		StateCode:    f.StateCode,
		ZIPCode:      f.ZIPCode,
		PhoneNumber:  f.PhoneNumber,
		SSN:          f.SSN,
		FICOScore:    f.FICOScore,
	}
	if dob, err := time.Parse(dateLayout, f.DateOfBirth); err != nil {
		errs = append(errs, validation.FieldError{Field: fieldPrefix + "dateOfBirth", Message: "must be a date in YYYY-MM-DD format"})
	} else {
		customer.DateOfBirth = dob
	}
	return customer, errs
}

// ToSnapshot builds the guarded-field snapshot the caller captured at read
// time.
func (r RecordStateDTO) ToSnapshot(fieldPrefix string) (domain.RecordSnapshot, []validation.FieldError) {
	account, accErrs := r.Account.ToDomainAccount("", "", fieldPrefix)
	customer, custErrs := r.Customer.ToDomainCustomer("", fieldPrefix)
	return domain.SnapshotOf(account, customer), append(accErrs, custErrs...)
}

// ToAccountResponse converts a domain.Account to its wire shape.
func ToAccountResponse(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID:       a.AccountID,
		Status:          string(a.Status),
		CurrentBalance:  a.CurrentBalance,
		CreditLimit:     a.CreditLimit,
		CashCreditLimit: a.CashCreditLimit,
		ExpiryDate:      a.ExpiryDate.Format(dateLayout),
		CustomerID:      a.CustomerID,
	}
}

// ToCustomerResponse converts a domain.Customer to its wire shape.
func ToCustomerResponse(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		CustomerID:   c.CustomerID,
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
		DateOfBirth:  c.DateOfBirth.Format(dateLayout),
		FICOScore:    c.FICOScore,
	}
}
