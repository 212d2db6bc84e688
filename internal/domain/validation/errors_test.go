package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senticor-ai/project-sub006/internal/domain/shared"
)

func TestRequireValid(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.NoError(t, RequireValid(nil, ""))
		assert.NoError(t, RequireValid([]Issue{}, "Create failed"))
	})

	t.Run("issues", func(t *testing.T) {
		issues := []Issue{
			{Source: SourceShape, Code: CodeActionBucketInvalid, Field: FieldBucket},
			{Source: SourceRule, Code: CodeBucketInvalid, Field: FieldBucket, Rule: RuleBucketEnum},
		}
		err := RequireValid(issues, "Create failed")
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &verr))
		assert.Equal(t, "Create failed", verr.Message)
		assert.Equal(t, issues, verr.Issues)
		assert.Equal(t, "Create failed: ACTION_BUCKET_INVALID, BUCKET_INVALID", err.Error())

		issues[0].Code = "MUTATED"
		assert.Equal(t, CodeActionBucketInvalid, verr.Issues[0].Code)
	})

	t.Run("default message", func(t *testing.T) {
		err := RequireValid([]Issue{{Code: CodeInvalidValue}}, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, DefaultMessage, verr.Message)
	})
}

func TestValidationError_DomainError(t *testing.T) {
	err := RequireValid([]Issue{{Code: CodePersonOrgRefRequired}}, "Person invalid")

	assert.ErrorIs(t, err, shared.ErrValidationFailed)
	assert.NotErrorIs(t, err, shared.ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	de := verr.DomainError()
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "Person invalid", de.Message)
}
