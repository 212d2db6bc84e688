// Package shared holds the error shape every layer reports through.
package shared

// DomainError is a stable, machine readable error code plus a human message
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so
// errors.Is(err, ErrInvalidInput) holds for re-worded copies.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidationFailed = NewDomainError("VALIDATION_FAILED", "Validation failed")
)
