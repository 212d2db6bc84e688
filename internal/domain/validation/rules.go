package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Senticor-ai/project-sub006/internal/domain/item"
)

// Packaged rule ids
const (
	RuleTriageInboxTargets = "triage.inbox-allowed-targets"
	RuleCompletedImmutable = "update.completed-immutable"
	RuleBucketEnum         = "item.bucket-enum"
)

// Business rule codes
const (
	CodeTriageInboxTarget  = "TRIAGE_INBOX_TARGET_INVALID"
	CodeCompletedImmutable = "COMPLETED_BUCKET_IMMUTABLE"
	CodeBucketInvalid      = "BUCKET_INVALID"
)

const fieldTriageTarget = "target.bucket"

var (
	ruleCodes = map[string]string{
		RuleTriageInboxTargets: CodeTriageInboxTarget,
		RuleCompletedImmutable: CodeCompletedImmutable,
		RuleBucketEnum:         CodeBucketInvalid,
	}
	ruleMessages = map[string]string{
		RuleTriageInboxTargets: "Inbox items can only be moved to " + triageTargetNames(),
		RuleCompletedImmutable: "Completed items cannot change bucket",
		RuleBucketEnum:         "Bucket must be one of: " + item.BucketNames(),
	}
	ruleFields = map[string]string{
		RuleTriageInboxTargets: fieldTriageTarget,
		RuleCompletedImmutable: FieldBucket,
		RuleBucketEnum:         FieldBucket,
	}
)

// triageTargetNames lists the inbox triage targets as "a, b or c"
func triageTargetNames() string {
	targets := item.InboxTriageTargets()
	names := make([]string, 0, len(targets))
	for _, b := range targets {
		names = append(names, b.String())
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// Rule set construction errors
var (
	ErrRuleIDRequired         = errors.New("rule id is required")
	ErrRuleExpressionRequired = errors.New("rule expression is required")
	ErrDuplicateRule          = errors.New("duplicate rule id")
	ErrUnknownRule            = errors.New("unknown rule id")
)

// CelRule is a named, optionally guarded boolean expression. Description is
// documentation only and never evaluated.
type CelRule struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	When        string `json:"when,omitempty"`
	Expression  string `json:"expression"`
}

// RuleSet is an immutable, ordered rule table
type RuleSet struct {
	rules []CelRule
	index map[string]int
}

// NewRuleSet validates and freezes rules in the given order
func NewRuleSet(rules []CelRule) (*RuleSet, error) {
	rs := &RuleSet{
		rules: make([]CelRule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrRuleIDRequired)
		}
		if r.Expression == "" {
			return nil, fmt.Errorf("rule %s: %w", r.ID, ErrRuleExpressionRequired)
		}
		if _, dup := rs.index[r.ID]; dup {
			return nil, fmt.Errorf("rule %s: %w", r.ID, ErrDuplicateRule)
		}
		rs.index[r.ID] = len(rs.rules)
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// Len returns the number of loaded rules
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns a copy of the rules in table order
func (rs *RuleSet) Rules() []CelRule {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.rules)
}

// Rule looks up a rule by id
func (rs *RuleSet) Rule(id string) (CelRule, bool) {
	if rs == nil {
		return CelRule{}, false
	}
	i, ok := rs.index[id]
	if !ok {
		return CelRule{}, false
	}
	return rs.rules[i], true
}

// Subset returns a new set holding only the named rules, in table order
func (rs *RuleSet) Subset(ids ...string) (*RuleSet, error) {
	for _, id := range ids {
		if _, ok := rs.Rule(id); !ok {
			return nil, fmt.Errorf("rule %s: %w", id, ErrUnknownRule)
		}
	}
	picked := make([]CelRule, 0, len(ids))
	for _, r := range rs.Rules() {
		if slices.Contains(ids, r.ID) {
			picked = append(picked, r)
		}
	}
	return NewRuleSet(picked)
}

// violation builds the issue recorded when rule's expression yields false
func violation(rule CelRule) Issue {
	issue := Issue{
		Source: SourceRule,
		Code:   CodeRuleViolation,
		Rule:   rule.ID,
	}
	if code, ok := ruleCodes[rule.ID]; ok {
		issue.Code = code
	}
	if msg, ok := ruleMessages[rule.ID]; ok {
		issue.Message = msg
	} else if rule.Description != "" {
		issue.Message = rule.Description
	} else {
		issue.Message = "Rule " + rule.ID + " was violated"
	}
	issue.Field = ruleFields[rule.ID]
	return issue
}
