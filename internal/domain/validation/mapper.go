package validation

import "github.com/Senticor-ai/project-sub006/internal/domain/item"

// Entity specific shape codes
const (
	CodeActionNameRequired       = "ACTION_NAME_REQUIRED"
	CodeActionBucketRequired     = "ACTION_BUCKET_REQUIRED"
	CodeActionBucketInvalid      = "ACTION_BUCKET_INVALID"
	CodeActionRawCaptureRequired = "ACTION_RAW_CAPTURE_REQUIRED"
	CodeProjectNameRequired      = "PROJECT_NAME_REQUIRED"
	CodeProjectBucketInvalid     = "PROJECT_BUCKET_INVALID"
	CodePersonNameRequired       = "PERSON_NAME_REQUIRED"
	CodePersonOrgRefRequired     = "PERSON_ORGREF_REQUIRED"
	CodePersonEmailInvalid       = "PERSON_EMAIL_INVALID"
	CodeReferenceNameRequired    = "REFERENCE_NAME_REQUIRED"
	CodeReferenceBucketInvalid   = "REFERENCE_BUCKET_INVALID"
	CodeReferenceURLInvalid      = "REFERENCE_URL_INVALID"
	CodeOrganizationNameRequired = "ORGANIZATION_NAME_REQUIRED"
)

type shapeKey struct {
	itemType item.ItemType
	code     string
	field    string
}

type shapeMapping struct {
	code    string
	message string
}

var bucketInvalidMessage = "Bucket must be one of: " + item.BucketNames()

var shapeMappings = map[shapeKey]shapeMapping{
	{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldName}:       {CodeActionNameRequired, "Action name is required"},
	{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldBucket}:     {CodeActionBucketRequired, "Action bucket is required"},
	{item.ItemTypeAction, CodeInvalidValue, FieldBucket}:                {CodeActionBucketInvalid, bucketInvalidMessage},
	{item.ItemTypeAction, CodeRequiredPropertyMissing, FieldRawCapture}: {CodeActionRawCaptureRequired, "Action capture text is required"},

	{item.ItemTypeProject, CodeRequiredPropertyMissing, FieldName}: {CodeProjectNameRequired, "Project name is required"},
	{item.ItemTypeProject, CodeInvalidValue, FieldBucket}:          {CodeProjectBucketInvalid, bucketInvalidMessage},

	{item.ItemTypePerson, CodeRequiredPropertyMissing, FieldName}:   {CodePersonNameRequired, "Person name is required"},
	{item.ItemTypePerson, CodeRequiredPropertyMissing, FieldOrgRef}: {CodePersonOrgRefRequired, "Person must belong to an organization"},
	{item.ItemTypePerson, CodeInvalidValue, FieldEmail}:             {CodePersonEmailInvalid, "Person email is not a valid address"},

	{item.ItemTypeReference, CodeRequiredPropertyMissing, FieldName}: {CodeReferenceNameRequired, "Reference name is required"},
	{item.ItemTypeReference, CodeInvalidValue, FieldBucket}:          {CodeReferenceBucketInvalid, bucketInvalidMessage},
	{item.ItemTypeReference, CodeInvalidValue, FieldURL}:             {CodeReferenceURLInvalid, "Reference url is not a valid URL"},

	{item.ItemTypeOrganization, CodeRequiredPropertyMissing, FieldName}: {CodeOrganizationNameRequired, "Organization name is required"},
}

// MapShapeIssue rewrites a generic shape issue into its entity specific code
// and message based on the document's @type. Issues without a mapping, and
// issues from other sources, are returned unchanged.
func MapShapeIssue(issue Issue, doc *item.Document) Issue {
	if doc == nil || issue.Source != SourceShape {
		return issue
	}
	m, ok := shapeMappings[shapeKey{doc.Type, issue.Code, issue.Field}]
	if !ok {
		return issue
	}
	issue.Code = m.code
	issue.Message = m.message
	return issue
}
