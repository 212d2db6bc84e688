package validation

import "github.com/Senticor-ai/project-sub006/internal/domain/item"

// Source identifies the layer that produced an issue
type Source string

const (
	// SourceShape marks structural issues from the shape layer
	SourceShape Source = "shacl"
	// SourceRule marks business-rule issues from the rule engine
	SourceRule Source = "cel"
)

// Generic issue codes
const (
	CodeRequiredPropertyMissing = "REQUIRED_PROPERTY_MISSING"
	CodeInvalidValue            = "INVALID_VALUE"
	CodeEvaluationError         = "CEL_EVALUATION_ERROR"
	CodeRuleViolation           = "CEL_RULE_VIOLATION"
)

// Issue is one field-addressable validation finding
type Issue struct {
	Source  Source `json:"source"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// PropertyField returns the field path addressing an additionalProperty entry
func PropertyField(id item.PropertyID) string {
	return "additionalProperty." + string(id)
}

// Codes returns the issue codes in order
func Codes(issues []Issue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}
