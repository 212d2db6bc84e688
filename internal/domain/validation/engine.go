package validation

import (
	"fmt"
)

// ExpressionEvaluator evaluates one expression against a context snapshot.
// Implementations must be safe for concurrent use.
type ExpressionEvaluator interface {
	Evaluate(expr string, ctx map[string]any) (any, error)
}

// RuleEngine evaluates a RuleSet against context snapshots. It holds no
// per-call state.
type RuleEngine struct {
	rules     *RuleSet
	evaluator ExpressionEvaluator
}

// NewRuleEngine binds a rule set to an expression evaluator
func NewRuleEngine(rules *RuleSet, evaluator ExpressionEvaluator) *RuleEngine {
	if rules == nil {
		rules, _ = NewRuleSet(nil)
	}
	return &RuleEngine{
		rules:     rules,
		evaluator: evaluator,
	}
}

// Rules returns the bound rule set
func (e *RuleEngine) Rules() *RuleSet {
	return e.rules
}

// RuleCount returns the number of loaded rules
func (e *RuleEngine) RuleCount() int {
	return e.rules.Len()
}

// Evaluate runs every rule in table order:
//  1. a rule whose guard evaluates falsy is skipped
//  2. an expression result of exactly false is a violation
//  3. any evaluation failure yields one CEL_EVALUATION_ERROR for that rule
func (e *RuleEngine) Evaluate(ctx map[string]any) []Issue {
	issues := make([]Issue, 0)
	for _, rule := range e.rules.rules {
		if issue, failed := e.evaluateRule(rule, ctx); failed {
			issues = append(issues, issue)
		}
	}
	return issues
}

func (e *RuleEngine) evaluateRule(rule CelRule, ctx map[string]any) (Issue, bool) {
	if rule.When != "" {
		applies, err := e.eval(rule.When, ctx)
		if err != nil {
			return evaluationError(rule, "when", err), true
		}
		if !truthy(applies) {
			return Issue{}, false
		}
	}

	result, err := e.eval(rule.Expression, ctx)
	if err != nil {
		return evaluationError(rule, "expression", err), true
	}
	if passed, ok := result.(bool); ok && !passed {
		return violation(rule), true
	}
	return Issue{}, false
}

func (e *RuleEngine) eval(expr string, ctx map[string]any) (result any, err error) {
	if e.evaluator == nil {
		return nil, fmt.Errorf("no expression evaluator configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	return e.evaluator.Evaluate(expr, ctx)
}

func evaluationError(rule CelRule, part string, err error) Issue {
	return Issue{
		Source:  SourceRule,
		Code:    CodeEvaluationError,
		Message: fmt.Sprintf("rule %s: %s could not be evaluated: %v", rule.ID, part, err),
		Rule:    rule.ID,
	}
}

// truthy treats false, nil, the empty string and numeric zero as false
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case uint:
		return val != 0
	case uint32:
		return val != 0
	case uint64:
		return val != 0
	case float32:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
