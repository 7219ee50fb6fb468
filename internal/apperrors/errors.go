package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed one or more field validation rules.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBusinessRule indicates a state-dependent rejection, e.g. raising the credit
// limit of an inactive account or paying against a zero balance.
var ErrBusinessRule = errors.New("business rule violation")

// ErrConflict indicates the record changed between read time and commit time.
// The caller must re-read and retry; conflicting edits are never merged.
var ErrConflict = errors.New("record changed since it was read")

// ErrAmountRange indicates a monetary value that is not representable within the
// configured fixed-point bounds after rounding.
var ErrAmountRange = errors.New("amount out of range")
