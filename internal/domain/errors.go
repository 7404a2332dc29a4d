package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")
)

// Validation error codes reported to callers. These are never silently
// corrected; the operation fails synchronously.
const (
	CodeMissingPricingOption  = "missing_pricing_option"
	CodePricingOptionMismatch = "pricing_option_mismatch"
	CodeInvalidQuantity       = "invalid_quantity"
	CodeIncompleteAddress     = "incomplete_address"
	CodeMalformedRecord       = "malformed_record"
)

// ValidationError carries a stable machine code alongside a human message.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
