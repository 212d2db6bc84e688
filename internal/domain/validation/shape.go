package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Senticor-ai/project-sub006/internal/domain/item"
)

// Field paths used by the shape layer
var (
	FieldID          = "@id"
	FieldType        = "@type"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldURL         = "url"
	FieldBucket      = PropertyField(item.PropBucket)
	FieldRawCapture  = PropertyField(item.PropRawCapture)
	FieldOrgRef      = PropertyField(item.PropOrgRef)
	FieldProjectRefs = PropertyField(item.PropProjectRefs)
)

type baseShape struct {
	ID          string   `field:"@id" validate:"required,canonical_id"`
	Type        string   `field:"@type" validate:"required,item_type"`
	Name        string   `field:"name" validate:"required"`
	ProjectRefs []string `field:"additionalProperty.app:projectRefs" validate:"omitempty,dive,canonical_id"`
}

type actionShape struct {
	baseShape
	Create     bool
	Bucket     string `field:"additionalProperty.app:bucket" validate:"required,bucket"`
	RawCapture string `field:"additionalProperty.app:rawCapture" validate:"required_if=Create true"`
}

type projectShape struct {
	baseShape
	Bucket string `field:"additionalProperty.app:bucket" validate:"omitempty,bucket"`
}

type personShape struct {
	baseShape
	OrgRef string `field:"additionalProperty.app:orgRef" validate:"required"`
	Email  string `field:"email" validate:"omitempty,email"`
}

type referenceShape struct {
	baseShape
	Bucket string `field:"additionalProperty.app:bucket" validate:"omitempty,bucket"`
	URL    string `field:"url" validate:"omitempty,url"`
}

type organizationShape struct {
	baseShape
}

// ShapeValidator checks the structural constraints of a document. It holds a
// single cached validator instance and is safe for concurrent use.
type ShapeValidator struct {
	validate *validator.Validate
}

// NewShapeValidator builds a shape validator with the item constraint tags registered
func NewShapeValidator() *ShapeValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("field")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "bucket", func(fl validator.FieldLevel) bool {
		return item.Bucket(fl.Field().String()).IsValid()
	})
	mustRegister(v, "canonical_id", func(fl validator.FieldLevel) bool {
		return item.IsValidCanonicalID(fl.Field().String())
	})
	mustRegister(v, "item_type", func(fl validator.FieldLevel) bool {
		return item.ItemType(fl.Field().String()).IsValid()
	})

	return &ShapeValidator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate returns the structural issues of doc with generic codes. isCreate
// additionally requires the capture text on action-like items. The result is
// never nil and depends only on its inputs.
func (s *ShapeValidator) Validate(doc *item.Document, isCreate bool) []Issue {
	if doc == nil {
		doc = &item.Document{}
	}

	issues := kindIssues(doc)
	reported := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		reported[issue.Field] = struct{}{}
	}

	err := s.validate.Struct(shapeFor(doc, isCreate))
	if err == nil {
		return issues
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return append(issues, Issue{
			Source:  SourceShape,
			Code:    CodeInvalidValue,
			Message: err.Error(),
		})
	}
	for _, fe := range fieldErrors {
		if _, dup := reported[fe.Field()]; dup {
			continue
		}
		reported[fe.Field()] = struct{}{}
		issues = append(issues, Issue{
			Source:  SourceShape,
			Code:    shapeCode(fe),
			Message: shapeMessage(fe),
			Field:   fe.Field(),
		})
	}
	return issues
}

// kindIssues reports every known property holding a value of the wrong kind
func kindIssues(doc *item.Document) []Issue {
	issues := make([]Issue, 0)
	for id, v := range doc.AdditionalProperty.All() {
		want, known := item.DeclaredKind(id)
		if !known || item.KindOf(v) == want {
			continue
		}
		issues = append(issues, Issue{
			Source:  SourceShape,
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("%s must be a %s value", id, want),
			Field:   PropertyField(id),
		})
	}
	return issues
}

func shapeFor(doc *item.Document, isCreate bool) any {
	base := baseShape{
		ID:   doc.ID,
		Type: string(doc.Type),
		Name: strings.TrimSpace(doc.Name),
	}
	base.ProjectRefs, _ = doc.ListProperty(item.PropProjectRefs)

	bucket, _ := doc.StringProperty(item.PropBucket)

	switch doc.Type {
	case item.ItemTypeAction:
		capture, _ := doc.StringProperty(item.PropRawCapture)
		return &actionShape{baseShape: base, Create: isCreate, Bucket: bucket, RawCapture: capture}
	case item.ItemTypeProject:
		return &projectShape{baseShape: base, Bucket: bucket}
	case item.ItemTypePerson:
		orgRef, _ := doc.StringProperty(item.PropOrgRef)
		return &personShape{baseShape: base, OrgRef: orgRef, Email: doc.Email}
	case item.ItemTypeReference:
		return &referenceShape{baseShape: base, Bucket: bucket, URL: doc.URL}
	case item.ItemTypeOrganization:
		return &organizationShape{baseShape: base}
	default:
		return &base
	}
}

func shapeCode(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return CodeRequiredPropertyMissing
	default:
		return CodeInvalidValue
	}
}

func shapeMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "bucket":
		return fe.Field() + " must be one of: " + item.BucketNames()
	case "canonical_id":
		return fe.Field() + " must be a canonical id"
	case "item_type":
		return fmt.Sprintf("@type %q is not a known item type", fe.Value())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " has an invalid value"
	}
}
