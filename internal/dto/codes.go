package dto

// Stable error codes carried by failure results, so callers can distinguish
// the error families of the core without parsing messages.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeBusinessRule = "BUSINESS_RULE_VIOLATION"
	CodeConflict     = "EDIT_CONFLICT"
	CodeNotFound     = "NOT_FOUND"
)
