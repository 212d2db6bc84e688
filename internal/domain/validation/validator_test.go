package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Senticor-ai/project-sub006/internal/domain/item"
)

func operationIs(op Operation) any {
	return mock.MatchedBy(func(ctx map[string]any) bool {
		return ctx[VarOperation] == string(op)
	})
}

func TestValidator_ValidateCreateItem(t *testing.T) {
	t.Run("valid action", func(t *testing.T) {
		evaluator := new(MockEvaluator)
		evaluator.On("Evaluate", "check", mock.Anything).Return(true, nil)
		v := NewValidator(nil, NewRuleEngine(mustRuleSet(CelRule{ID: "r", Expression: "check"}), evaluator))

		issues := v.ValidateCreateItem(newAction(item.BucketNext))
		require.NotNil(t, issues)
		assert.Empty(t, issues)

		evaluator.AssertCalled(t, "Evaluate", "check", RuleContext{Operation: OperationCreate, Bucket: item.BucketNext}.Map())
	})

	t.Run("shape issues are mapped and come first", func(t *testing.T) {
		evaluator := new(MockEvaluator)
		evaluator.On("Evaluate", "check", mock.Anything).Return(false, nil)
		v := NewValidator(nil, NewRuleEngine(mustRuleSet(CelRule{ID: RuleBucketEnum, Expression: "check"}), evaluator))

		issues := v.ValidateCreateItem(newAction("invalid"))
		require.Len(t, issues, 2)
		assert.Equal(t, CodeActionBucketInvalid, issues[0].Code)
		assert.Equal(t, "additionalProperty.app:bucket", issues[0].Field)
		assert.Equal(t, SourceShape, issues[0].Source)
		assert.Equal(t, CodeBucketInvalid, issues[1].Code)
		assert.Equal(t, SourceRule, issues[1].Source)
	})

	t.Run("person without orgRef", func(t *testing.T) {
		v := NewValidator(nil, nil)
		issues := v.ValidateCreateItem(newPerson("", ""))
		assert.Equal(t, []string{CodePersonOrgRefRequired}, Codes(issues))
	})

	t.Run("nil document", func(t *testing.T) {
		v := NewValidator(nil, nil)
		issues := v.ValidateCreateItem(nil)
		assert.Contains(t, Codes(issues), CodeRequiredPropertyMissing)
	})
}

func TestValidator_ValidateTriageTransition(t *testing.T) {
	evaluator := new(MockEvaluator)
	evaluator.On("Evaluate", "allowed", mock.Anything).Return(false, nil)
	v := NewValidator(nil, NewRuleEngine(mustRuleSet(CelRule{ID: RuleTriageInboxTargets, Expression: "allowed"}), evaluator))

	issues := v.ValidateTriageTransition(TriageTransition{SourceBucket: item.BucketInbox, TargetBucket: item.BucketCompleted})
	require.Len(t, issues, 1)
	assert.Equal(t, CodeTriageInboxTarget, issues[0].Code)
	assert.Equal(t, "target.bucket", issues[0].Field)

	evaluator.AssertCalled(t, "Evaluate", "allowed", RuleContext{
		Operation:    OperationTriage,
		Bucket:       item.BucketCompleted,
		SourceBucket: item.BucketInbox,
		TargetBucket: item.BucketCompleted,
	}.Map())
}

func TestValidator_ValidateUpdateItem(t *testing.T) {
	evaluator := new(MockEvaluator)
	evaluator.On("Evaluate", "immutable", operationIs(OperationUpdate)).Return(false, nil)
	evaluator.On("Evaluate", "immutable", operationIs(OperationCreate)).Return(true, nil)
	v := NewValidator(nil, NewRuleEngine(mustRuleSet(CelRule{ID: RuleCompletedImmutable, Expression: "immutable"}), evaluator))

	next := newAction(item.BucketNext)
	next.Name = ""

	issues := v.ValidateUpdateItem(UpdateInput{SourceBucket: item.BucketCompleted, NextItem: next})
	assert.Equal(t, []string{CodeCompletedImmutable, CodeActionNameRequired}, Codes(issues))

	evaluator.AssertCalled(t, "Evaluate", "immutable", RuleContext{
		Operation:    OperationUpdate,
		SourceBucket: item.BucketCompleted,
		TargetBucket: item.BucketNext,
	}.Map())
}

func TestValidator_Idempotent(t *testing.T) {
	evaluator := new(MockEvaluator)
	evaluator.On("Evaluate", "check", mock.Anything).Return(false, nil)
	v := NewValidator(nil, NewRuleEngine(mustRuleSet(CelRule{ID: "custom", Description: "custom", Expression: "check"}), evaluator))

	doc := newPerson("", "bad")
	assert.Equal(t, v.ValidateCreateItem(doc), v.ValidateCreateItem(doc))

	transition := TriageTransition{SourceBucket: item.BucketInbox, TargetBucket: item.BucketProject}
	assert.Equal(t, v.ValidateTriageTransition(transition), v.ValidateTriageTransition(transition))

	update := UpdateInput{SourceBucket: item.BucketNext, NextItem: doc}
	assert.Equal(t, v.ValidateUpdateItem(update), v.ValidateUpdateItem(update))
}

func TestValidator_RuleCount(t *testing.T) {
	v := NewValidator(nil, NewRuleEngine(mustRuleSet(
		CelRule{ID: "a", Expression: "true"},
		CelRule{ID: "b", Expression: "true"},
		CelRule{ID: "c", Expression: "true"},
	), nil))
	assert.Equal(t, 3, v.RuleCount())
	assert.Equal(t, v.RuleCount(), v.RuleCount())
}
