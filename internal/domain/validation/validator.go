package validation

import "github.com/Senticor-ai/project-sub006/internal/domain/item"

// TriageTransition is a proposed bucket move
type TriageTransition struct {
	SourceBucket item.Bucket
	TargetBucket item.Bucket
}

// UpdateInput is a proposed update: the item's current bucket and the
// projected document after the patch is applied.
type UpdateInput struct {
	SourceBucket item.Bucket
	NextItem     *item.Document
}

// Validator combines the shape layer, the code mapper and the rule engine
// into the create, update and triage entry points. Every entry point returns
// a fresh, non-nil issue list; empty means valid.
type Validator struct {
	shape  *ShapeValidator
	engine *RuleEngine
}

// NewValidator builds a validator. A nil shape validator gets a default one.
func NewValidator(shape *ShapeValidator, engine *RuleEngine) *Validator {
	if shape == nil {
		shape = NewShapeValidator()
	}
	if engine == nil {
		engine = NewRuleEngine(nil, nil)
	}
	return &Validator{shape: shape, engine: engine}
}

// RuleCount returns the number of loaded business rules
func (v *Validator) RuleCount() int {
	return v.engine.RuleCount()
}

// Rules returns the loaded rule table
func (v *Validator) Rules() *RuleSet {
	return v.engine.Rules()
}

// ValidateCreateItem checks doc's shape, maps shape issues to entity codes,
// then evaluates the rules for a create. Shape issues come first.
func (v *Validator) ValidateCreateItem(doc *item.Document) []Issue {
	if doc == nil {
		doc = &item.Document{}
	}

	shapeIssues := v.shape.Validate(doc, true)
	issues := make([]Issue, 0, len(shapeIssues))
	for _, issue := range shapeIssues {
		issues = append(issues, MapShapeIssue(issue, doc))
	}

	ctx := RuleContext{
		Operation: OperationCreate,
		Bucket:    bucketOf(doc),
	}
	return append(issues, v.engine.Evaluate(ctx.Map())...)
}

// ValidateTriageTransition evaluates the rules for a bucket move. No shape
// checks run.
func (v *Validator) ValidateTriageTransition(t TriageTransition) []Issue {
	ctx := RuleContext{
		Operation:    OperationTriage,
		Bucket:       t.TargetBucket,
		SourceBucket: t.SourceBucket,
		TargetBucket: t.TargetBucket,
	}
	return v.engine.Evaluate(ctx.Map())
}

// ValidateUpdateItem evaluates the update rules, then fully validates the
// projected document as a create. Rule issues come first.
//
// The update context leaves bucket empty: bucket membership is checked once,
// by the create pass over the projected document.
func (v *Validator) ValidateUpdateItem(in UpdateInput) []Issue {
	ctx := RuleContext{
		Operation:    OperationUpdate,
		SourceBucket: in.SourceBucket,
		TargetBucket: bucketOf(in.NextItem),
	}
	issues := v.engine.Evaluate(ctx.Map())
	return append(issues, v.ValidateCreateItem(in.NextItem)...)
}

func bucketOf(doc *item.Document) item.Bucket {
	if doc == nil {
		return ""
	}
	bucket, _ := doc.Bucket()
	return bucket
}
