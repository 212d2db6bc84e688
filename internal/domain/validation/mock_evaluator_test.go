package validation

import (
	"github.com/stretchr/testify/mock"
)

// MockEvaluator is a mock implementation of ExpressionEvaluator
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(expr string, ctx map[string]any) (any, error) {
	args := m.Called(expr, ctx)
	return args.Get(0), args.Error(1)
}

func mustRuleSet(rules ...CelRule) *RuleSet {
	rs, err := NewRuleSet(rules)
	if err != nil {
		panic(err)
	}
	return rs
}
