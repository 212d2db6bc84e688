package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Senticor-ai/project-sub006/internal/domain/item"
)

func TestMapShapeIssue(t *testing.T) {
	tests := []struct {
		itemType item.ItemType
		code     string
		field    string
		want     string
	}{
		{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldName, CodeActionNameRequired},
		{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldBucket, CodeActionBucketRequired},
		{item.ItemTypeAction, CodeInvalidValue, FieldBucket, CodeActionBucketInvalid},
		{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldRawCapture, CodeActionRawCaptureRequired},
		{item.ItemTypeProject, CodeRequiredPropertyMissing, FieldName, CodeProjectNameRequired},
		{item.ItemTypeProject, CodeInvalidValue, FieldBucket, CodeProjectBucketInvalid},
		{item.ItemTypePerson, CodeRequiredPropertyMissing, FieldName, CodePersonNameRequired},
		{item.ItemTypePerson, CodeRequiredPropertyMissing, FieldOrgRef, CodePersonOrgRefRequired},
		{item.ItemTypePerson, CodeInvalidValue, FieldEmail, CodePersonEmailInvalid},
		{item.ItemTypeReference, CodeRequiredPropertyMissing, FieldName, CodeReferenceNameRequired},
		{item.ItemTypeReference, CodeInvalidValue, FieldBucket, CodeReferenceBucketInvalid},
		{item.ItemTypeReference, CodeInvalidValue, FieldURL, CodeReferenceURLInvalid},
		{item.ItemTypeOrganization, CodeRequiredPropertyMissing, FieldName, CodeOrganizationNameRequired},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			doc := &item.Document{Type: tc.itemType}
			issue := Issue{Source: SourceShape, Code: tc.code, Message: "generic", Field: tc.field}

			mapped := MapShapeIssue(issue, doc)
			assert.Equal(t, tc.want, mapped.Code)
			assert.Equal(t, tc.field, mapped.Field)
			assert.Equal(t, SourceShape, mapped.Source)
			assert.NotEqual(t, "generic", mapped.Message)
		})
	}
}

func TestMapShapeIssue_FallsThrough(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		doc   *item.Document
	}{
		{
			name:  "unmapped field",
			issue: Issue{Source: SourceShape, Code: CodeInvalidValue, Field: FieldID},
			doc:   &item.Document{Type: item.ItemTypeAction},
		},
		{
			name:  "unmapped type",
			issue: Issue{Source: SourceShape, Code: CodeRequiredPropertyMissing, Field: FieldName},
			doc:   &item.Document{Type: "Thing"},
		},
		{
			name:  "rule issue",
			issue: Issue{Source: SourceRule, Code: CodeInvalidValue, Field: FieldBucket},
			doc:   &item.Document{Type: item.ItemTypeAction},
		},
		{
			name:  "nil document",
			issue: Issue{Source: SourceShape, Code: CodeRequiredPropertyMissing, Field: FieldName},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.issue, MapShapeIssue(tc.issue, tc.doc))
		})
	}
}
