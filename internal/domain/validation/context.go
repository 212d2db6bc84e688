package validation

import "github.com/Senticor-ai/project-sub006/internal/domain/item"

// Operation names the kind of mutation being validated
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationTriage Operation = "triage"
)

// Context variable names visible to rule expressions
const (
	VarOperation = "operation"
	VarBucket    = "bucket"
	VarSource    = "source"
	VarTarget    = "target"
)

// ContextVariables lists every top-level variable a rule context carries
func ContextVariables() []string {
	return []string{VarOperation, VarBucket, VarSource, VarTarget}
}

// RuleContext is the snapshot rules are evaluated against. Absent buckets
// render as the empty string so every variable is always bound.
type RuleContext struct {
	Operation    Operation
	Bucket       item.Bucket
	SourceBucket item.Bucket
	TargetBucket item.Bucket
}

// Map renders the context as the variable map handed to the evaluator
func (c RuleContext) Map() map[string]any {
	return map[string]any{
		VarOperation: string(c.Operation),
		VarBucket:    string(c.Bucket),
		VarSource:    map[string]any{"bucket": string(c.SourceBucket)},
		VarTarget:    map[string]any{"bucket": string(c.TargetBucket)},
	}
}
