package validation

import (
	"slices"
	"strings"

	"github.com/Senticor-ai/project-sub006/internal/domain/shared"
)

// DefaultMessage is used when RequireValid is called without a message
const DefaultMessage = "Validation failed"

// ValidationError aggregates every issue of a failed operation. It is never
// built for an empty issue list.
type ValidationError struct {
	Message string  `json:"message"`
	Issues  []Issue `json:"issues"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message + ": " + strings.Join(Codes(e.Issues), ", ")
}

// DomainError converts the aggregate into the shared domain error shape
func (e *ValidationError) DomainError() *shared.DomainError {
	return shared.NewDomainError(shared.ErrValidationFailed.Code, e.Message)
}

// Is matches shared.ErrValidationFailed so callers can branch with errors.Is
func (e *ValidationError) Is(target error) bool {
	de, ok := target.(*shared.DomainError)
	return ok && de.Code == shared.ErrValidationFailed.Code
}

// RequireValid returns nil for an empty issue list and a *ValidationError
// carrying a copy of issues otherwise. An empty message falls back to
// DefaultMessage.
func RequireValid(issues []Issue, message string) error {
	if len(issues) == 0 {
		return nil
	}
	if message == "" {
		message = DefaultMessage
	}
	return &ValidationError{
		Message: message,
		Issues:  slices.Clone(issues),
	}
}
