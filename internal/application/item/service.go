// Package item orchestrates item creation, updates and triage on top of the
// domain validator.
package item

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Senticor-ai/project-sub006/internal/application/item/dto"
	"github.com/Senticor-ai/project-sub006/internal/domain/item"
	"github.com/Senticor-ai/project-sub006/internal/domain/shared"
	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/logger"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/telemetry"
)

const spanService = "items"

// Failure messages carried by *validation.ValidationError
const (
	MsgCreateFailed = "Item creation failed validation"
	MsgUpdateFailed = "Item update failed validation"
	MsgTriageFailed = "Item triage failed validation"
)

// Service validates item mutations. It holds no state besides its
// collaborators and is safe for concurrent use.
type Service struct {
	validator *validation.Validator
	metrics   *telemetry.ValidationMetrics
	logger    *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records validation metrics
func WithMetrics(m *telemetry.ValidationMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new item service
func NewService(v *validation.Validator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{validator: v, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RuleCount returns the number of loaded business rules
func (s *Service) RuleCount() int {
	return s.validator.RuleCount()
}

// ListRules describes the loaded business rules
func (s *Service) ListRules() dto.RuleListResponse {
	return dto.ToRuleListResponse(s.validator.Rules())
}

// CreateItem builds a new document from req and validates it. The document is
// returned only when it is valid.
func (s *Service) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*item.Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "create",
		telemetry.WithAttribute(telemetry.SpanAttrItemType, req.Type),
	)
	defer span.End()

	spec := req.ToSpec()
	if !spec.Type.IsValid() {
		err := shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("unknown item type %q", req.Type))
		telemetry.RecordError(span, err)
		return nil, err
	}
	if spec.OrgID != "" && !item.IsValidOrgID(spec.OrgID) {
		err := shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("invalid org id %q", spec.OrgID))
		telemetry.RecordError(span, err)
		return nil, err
	}

	doc := item.BuildCreateItem(spec)
	ctx = logger.WithItemID(ctx, doc.ID)
	if spec.OrgID != "" {
		ctx = logger.WithOrgID(ctx, spec.OrgID)
		telemetry.SetAttributes(span, telemetry.SpanAttrOrgID, spec.OrgID)
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemID, doc.ID,
		telemetry.SpanAttrBucket, string(spec.Bucket),
	)

	start := time.Now()
	issues := s.validator.ValidateCreateItem(doc)
	if err := s.finish(ctx, span, validation.OperationCreate, start, issues, MsgCreateFailed); err != nil {
		return nil, err
	}

	telemetry.SetOK(span)
	s.log(ctx).Info("Item created", zap.String("item_type", doc.Type.String()))
	return doc, nil
}

// ValidateDocument runs create validation over an existing document
func (s *Service) ValidateDocument(ctx context.Context, doc *item.Document) error {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "validate")
	defer span.End()

	ctx = withDocument(ctx, span, doc)

	start := time.Now()
	issues := s.validator.ValidateCreateItem(doc)
	return succeed(span, s.finish(ctx, span, validation.OperationCreate, start, issues, MsgCreateFailed))
}

// UpdateItem applies patch to current and validates the result. current is
// never modified; the projected document is returned when valid.
func (s *Service) UpdateItem(ctx context.Context, current *item.Document, patch item.Patch) (*item.Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "update")
	defer span.End()

	if current == nil {
		telemetry.RecordError(span, shared.ErrInvalidInput)
		return nil, shared.ErrInvalidInput
	}
	return s.update(ctx, span, current, patch)
}

// ValidateUpdate checks an already projected document against the item's
// bucket before the update.
func (s *Service) ValidateUpdate(ctx context.Context, source item.Bucket, next *item.Document) error {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "validate_update",
		telemetry.WithAttribute(telemetry.SpanAttrSourceBucket, string(source)),
	)
	defer span.End()

	ctx = withDocument(ctx, span, next)

	start := time.Now()
	issues := s.validator.ValidateUpdateItem(validation.UpdateInput{
		SourceBucket: source,
		NextItem:     next,
	})
	return succeed(span, s.finish(ctx, span, validation.OperationUpdate, start, issues, MsgUpdateFailed))
}

// TriageItem moves current into target. The transition is checked first;
// when it is allowed the moved document is validated as an update.
func (s *Service) TriageItem(ctx context.Context, current *item.Document, target item.Bucket) (*item.Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "triage")
	defer span.End()

	if current == nil {
		telemetry.RecordError(span, shared.ErrInvalidInput)
		return nil, shared.ErrInvalidInput
	}
	ctx = withDocument(ctx, span, current)

	source, _ := current.Bucket()
	start := time.Now()
	issues := s.validator.ValidateTriageTransition(validation.TriageTransition{
		SourceBucket: source,
		TargetBucket: target,
	})
	if err := s.finish(ctx, span, validation.OperationTriage, start, issues, MsgTriageFailed); err != nil {
		return nil, err
	}

	return s.update(ctx, span, current, item.BuildBucketPatch(target))
}

// SetFocus toggles the focus flag on current
func (s *Service) SetFocus(ctx context.Context, current *item.Document, focused bool) (*item.Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "focus")
	defer span.End()

	if current == nil {
		telemetry.RecordError(span, shared.ErrInvalidInput)
		return nil, shared.ErrInvalidInput
	}
	return s.update(ctx, span, current, item.BuildFocusPatch(focused))
}

// ValidateTransition checks a bucket move without a document
func (s *Service) ValidateTransition(ctx context.Context, source, target item.Bucket) error {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "transition",
		telemetry.WithAttribute(telemetry.SpanAttrSourceBucket, string(source)),
		telemetry.WithAttribute(telemetry.SpanAttrTargetBucket, string(target)),
	)
	defer span.End()

	start := time.Now()
	issues := s.validator.ValidateTriageTransition(validation.TriageTransition{
		SourceBucket: source,
		TargetBucket: target,
	})
	return succeed(span, s.finish(ctx, span, validation.OperationTriage, start, issues, MsgTriageFailed))
}

func (s *Service) update(ctx context.Context, span trace.Span, current *item.Document, patch item.Patch) (*item.Document, error) {
	ctx = withDocument(ctx, span, current)

	source, _ := current.Bucket()
	next := current.ApplyPatch(patch)
	target, _ := next.Bucket()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrSourceBucket, string(source),
		telemetry.SpanAttrTargetBucket, string(target),
	)

	start := time.Now()
	issues := s.validator.ValidateUpdateItem(validation.UpdateInput{
		SourceBucket: source,
		NextItem:     next,
	})
	if err := s.finish(ctx, span, validation.OperationUpdate, start, issues, MsgUpdateFailed); err != nil {
		return nil, err
	}

	telemetry.SetOK(span)
	s.log(ctx).Debug("Item updated",
		zap.String("source_bucket", string(source)),
		zap.String("target_bucket", string(target)),
	)
	return next, nil
}

// finish records the outcome of one validation pass and converts issues
// into an error.
func (s *Service) finish(
	ctx context.Context,
	span trace.Span,
	op validation.Operation,
	start time.Time,
	issues []validation.Issue,
	message string,
) error {
	s.metrics.RecordDuration(ctx, string(op), time.Since(start))
	s.metrics.RecordIssues(ctx, string(op), issues)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrIssueCount, len(issues),
		telemetry.SpanAttrRuleCount, s.validator.RuleCount(),
	)

	log := s.log(ctx)
	for _, issue := range issues {
		if issue.Code != validation.CodeEvaluationError {
			continue
		}
		log.Error("Rule could not be evaluated",
			zap.String("rule", issue.Rule),
			zap.String("operation", string(op)),
			zap.String("detail", issue.Message),
		)
		telemetry.AddEvent(span, "rule_evaluation_failed", "rule", issue.Rule)
	}

	err := validation.RequireValid(issues, message)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Debug("Validation rejected",
			zap.String("operation", string(op)),
			zap.Strings("codes", validation.Codes(issues)),
		)
	}
	return err
}

// succeed marks span Ok when err is nil. An Ok status is final, so it is set
// only once the whole operation has passed.
func succeed(span trace.Span, err error) error {
	if err == nil {
		telemetry.SetOK(span)
	}
	return err
}

func (s *Service) log(ctx context.Context) *logger.ContextLogger {
	return logger.WithLogger(ctx, s.logger)
}

func withDocument(ctx context.Context, span trace.Span, doc *item.Document) context.Context {
	if doc == nil {
		return ctx
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemID, doc.ID,
		telemetry.SpanAttrItemType, doc.Type.String(),
	)
	ctx = logger.WithItemID(ctx, doc.ID)
	if id, err := doc.CanonicalID(); err == nil && id.IsOrgScoped() {
		ctx = logger.WithOrgID(ctx, id.OrgID())
		telemetry.SetAttributes(span, telemetry.SpanAttrOrgID, id.OrgID())
	}
	return ctx
}
