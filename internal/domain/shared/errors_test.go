package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("INVALID_INPUT", "unknown item type")
	assert.Equal(t, "unknown item type", err.Error())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, fmt.Errorf("create: %w", err), ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, errors.New("INVALID_INPUT"))
}
