// Package validation implements the field-level rule set that gates every
// account/customer mutation. Rules are pure functions returning a nil
// *FieldError on success; composite checks collect every failure rather than
// stopping at the first, so an edit screen can report all problems in one
// round trip.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// FieldError is one failing rule: the offending field and a human-readable
// reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result aggregates the failures of a composite validation call.
type Result struct {
	Errors []FieldError
}

// Add records a failure.
func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Collect records a failure if fe is non-nil.
func (r *Result) Collect(fe *FieldError) {
	if fe != nil {
		r.Errors = append(r.Errors, *fe)
	}
}

// Merge appends the failures of another result.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err renders the aggregated failures as a single validation error, or nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	parts := make([]string, len(r.Errors))
	for i, fe := range r.Errors {
		parts[i] = fe.Field + " " + fe.Message
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(parts, "; "))
}

const (
	accountIDLength  = 11
	customerIDLength = 9
	maxExpiryYears   = 10
	minAge           = 18
	ficoMin          = 300
	ficoMax          = 850
)

var (
	ssnDashed = regexp.MustCompile(`^(\d{3})-(\d{2})-(\d{4})$`)
	digitsRE  = regexp.MustCompile(`^\d+$`)
	zipRE     = regexp.MustCompile(`^\d{5}$`)
	nonDigit  = regexp.MustCompile(`\D`)
)

// Options tunes the configurable boundaries of the rule set. Zero values fall
// back to the legacy defaults.
type Options struct {
	CreditLimitCeiling domain.Money
	EarliestBirthYear  int
	// DevAreaCodes allow-lists otherwise unassignable phone area codes for
	// development and test fixtures.
	DevAreaCodes []string
	Now          func() time.Time
}

// Validator composes the rule set with its configured boundaries.
type Validator struct {
	creditCeiling     domain.Money
	earliestBirthYear int
	extraAreaCodes    map[string]struct{}
	now               func() time.Time
}

// New builds a Validator, applying legacy defaults for unset options.
func New(opts Options) *Validator {
	v := &Validator{
		creditCeiling:     opts.CreditLimitCeiling,
		earliestBirthYear: opts.EarliestBirthYear,
		extraAreaCodes:    make(map[string]struct{}, len(opts.DevAreaCodes)),
		now:               opts.Now,
	}
	if v.creditCeiling.Sign() == 0 {
		v.creditCeiling = domain.MustMoney("999999.99")
	}
	if v.earliestBirthYear == 0 {
		v.earliestBirthYear = 1900
	}
	if v.now == nil {
		v.now = time.Now
	}
	for _, code := range opts.DevAreaCodes {
		v.extraAreaCodes[code] = struct{}{}
	}
	return v
}

// AccountID requires exactly 11 numeric digits.
func AccountID(id string) *FieldError {
	if len(id) != accountIDLength || !digitsRE.MatchString(id) {
		return &FieldError{Field: "accountID", Message: "must be exactly 11 numeric digits"}
	}
	return nil
}

// CustomerID requires exactly 9 numeric digits.
func CustomerID(id string) *FieldError {
	if len(id) != customerIDLength || !digitsRE.MatchString(id) {
		return &FieldError{Field: "customerID", Message: "must be exactly 9 numeric digits"}
	}
	return nil
}

// Status requires one of the fixed account statuses.
func Status(s domain.AccountStatus) *FieldError {
	if !s.IsValid() {
		return &FieldError{Field: "status", Message: "must be one of ACTIVE, INACTIVE, SUSPENDED"}
	}
	return nil
}

// CreditLimits checks the credit limit against [0, ceiling] and the cash
// limit against [0, credit limit]. Both fields are checked so a single call
// reports every problem.
func (v *Validator) CreditLimits(credit, cash domain.Money) []FieldError {
	var errs []FieldError
	switch {
	case credit.IsNegative():
		errs = append(errs, FieldError{Field: "creditLimit", Message: "cannot be negative"})
	case credit.GreaterThan(v.creditCeiling):
		errs = append(errs, FieldError{Field: "creditLimit", Message: "cannot exceed " + v.creditCeiling.String()})
	}
	switch {
	case cash.IsNegative():
		errs = append(errs, FieldError{Field: "cashCreditLimit", Message: "cannot be negative"})
	case cash.GreaterThan(credit):
		errs = append(errs, FieldError{Field: "cashCreditLimit", Message: "cannot exceed the credit limit"})
	}
	return errs
}

// ExpiryDate requires a date from today up to 10 years out.
func (v *Validator) ExpiryDate(d time.Time) *FieldError {
	today := dateOnly(v.now())
	exp := dateOnly(d)
	if exp.Before(today) {
		return &FieldError{Field: "expiryDate", Message: "cannot be in the past"}
	}
	if exp.After(today.AddDate(maxExpiryYears, 0, 0)) {
		return &FieldError{Field: "expiryDate", Message: "cannot be more than 10 years in the future"}
	}
	return nil
}

// SSN accepts AAA-GG-SSSS or 9 contiguous digits and enforces the SSA
// assignment rules: area not 000, 666 or 900-999, group not 00, serial not
// 0000.
func SSN(s string) *FieldError {
	candidate := s
	if len(candidate) == 9 && digitsRE.MatchString(candidate) {
		candidate = candidate[0:3] + "-" + candidate[3:5] + "-" + candidate[5:9]
	}
	parts := ssnDashed.FindStringSubmatch(candidate)
	if parts == nil {
		return &FieldError{Field: "ssn", Message: "must use the format AAA-GG-SSSS"}
	}
	area, group, serial := parts[1], parts[2], parts[3]
	if area == "000" || area == "666" || area >= "900" {
		return &FieldError{Field: "ssn", Message: "area number " + area + " is not assignable"}
	}
	if group == "00" {
		return &FieldError{Field: "ssn", Message: "group number cannot be 00"}
	}
	if serial == "0000" {
		return &FieldError{Field: "ssn", Message: "serial number cannot be 0000"}
	}
	return nil
}

// Phone strips formatting, requires a 10-digit NANP number (an optional
// leading 1 is tolerated) and checks the area code against the assignable
// table plus any configured allow list.
func (v *Validator) Phone(s string) *FieldError {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return &FieldError{Field: "phoneNumber", Message: "must contain a 10-digit US phone number"}
	}
	area := digits[0:3]
	if _, ok := usAreaCodes[area]; ok {
		return nil
	}
	if _, ok := v.extraAreaCodes[area]; ok {
		return nil
	}
	return &FieldError{Field: "phoneNumber", Message: "area code " + area + " is not assignable"}
}

// StateCode requires a known US state or territory abbreviation.
func StateCode(s string) *FieldError {
	if _, ok := usStates[s]; !ok {
		return &FieldError{Field: "stateCode", Message: "is not a valid US state or territory code"}
	}
	return nil
}

// StateZIP requires a 5-digit ZIP whose prefix range belongs to the supplied
// state. A well-formed ZIP paired with the wrong state is rejected.
func StateZIP(state, zip string) *FieldError {
	if !zipRE.MatchString(zip) {
		return &FieldError{Field: "zipCode", Message: "must be exactly 5 numeric digits"}
	}
	if _, ok := usStates[state]; !ok {
		// The state rule already reported the bad state; the pairing
		// cannot be judged without one.
		return nil
	}
	prefix, _ := strconv.Atoi(zip[0:3])
	if !zipInState(state, prefix) {
		return &FieldError{Field: "zipCode", Message: "is not within the ZIP range for state " + state}
	}
	return nil
}

// DateOfBirth requires an adult customer born no earlier than the configured
// year and not in the future.
func (v *Validator) DateOfBirth(d time.Time) *FieldError {
	today := dateOnly(v.now())
	dob := dateOnly(d)
	if dob.After(today) {
		return &FieldError{Field: "dateOfBirth", Message: "cannot be in the future"}
	}
	if dob.Year() < v.earliestBirthYear {
		return &FieldError{Field: "dateOfBirth", Message: "cannot be before " + strconv.Itoa(v.earliestBirthYear)}
	}
	if dob.AddDate(minAge, 0, 0).After(today) {
		return &FieldError{Field: "dateOfBirth", Message: "customer must be at least 18 years old"}
	}
	return nil
}

// FICOScore requires an integer in [300, 850].
func FICOScore(score int) *FieldError {
	if score < ficoMin || score > ficoMax {
		return &FieldError{Field: "ficoScore", Message: "must be between 300 and 850"}
	}
	return nil
}

// requiredText flags blank mandatory text fields.
func requiredText(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: "must not be blank"}
	}
	return nil
}

// Customer runs every applicable customer rule and collects all failures.
func (v *Validator) Customer(c domain.Customer) Result {
	var res Result
	res.Collect(CustomerID(c.CustomerID))
	res.Merge(v.customerFields(c))
	return res
}

// customerFields runs the editable-field rules. Identity is left to the
/// caller: during an update the customer ID is resolved from the stored
// account linkage, not from the edit.
func (v *Validator) customerFields(c domain.Customer) Result {
	var res Result
	res.Collect(requiredText("firstName", c.FirstName))
	res.Collect(requiredText("lastName", c.LastName))
	res.Collect(requiredText("addressLine1", c.AddressLine1))
	res.Collect(requiredText("city", c.City))
	res.Collect(StateCode(c.StateCode))
	res.Collect(StateZIP(c.StateCode, c.ZIPCode))
	res.Collect(v.Phone(c.PhoneNumber))
	res.Collect(SSN(c.SSN))
	res.Collect(v.DateOfBirth(c.DateOfBirth))
	res.Collect(FICOScore(c.FICOScore))
	return res
}

// AccountUpdate validates a full account+customer mutation candidate,
// collecting every failure across both records. The rules are
// state-independent so they run before the current records are fetched; the
// customer's identity comes from the stored account linkage and is not
// validated here.
func (v *Validator) AccountUpdate(a domain.Account, c domain.Customer) Result {
	var res Result
	res.Collect(AccountID(a.AccountID))
	res.Collect(Status(a.Status))
	for _, fe := range v.CreditLimits(a.CreditLimit, a.CashCreditLimit) {
		res.Errors = append(res.Errors, fe)
	}
	res.Collect(v.ExpiryDate(a.ExpiryDate))
	res.Merge(v.customerFields(c))
	return res
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
