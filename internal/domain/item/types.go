package item

import (
	"strings"
)

// ItemType is the linked-data @type of a work item document
type ItemType string

const (
	// ItemTypeAction is a single actionable step (also the shape of a fresh inbox capture)
	ItemTypeAction ItemType = "Action"
	// ItemTypeProject is a multi-step outcome grouping actions
	ItemTypeProject ItemType = "Project"
	// ItemTypePerson is a contact, always linked to an organization
	ItemTypePerson ItemType = "Person"
	// ItemTypeReference is non-actionable reference material
	ItemTypeReference ItemType = "Reference"
	// ItemTypeOrganization is an organization people belong to
	ItemTypeOrganization ItemType = "Organization"
)

// AllItemTypes returns all supported item types
func AllItemTypes() []ItemType {
	return []ItemType{
		ItemTypeAction,
		ItemTypeProject,
		ItemTypePerson,
		ItemTypeReference,
		ItemTypeOrganization,
	}
}

// IsValid checks if the item type is supported
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeAction, ItemTypeProject, ItemTypePerson, ItemTypeReference, ItemTypeOrganization:
		return true
	default:
		return false
	}
}

// IsActionLike reports whether items of this type carry capture text and a workflow bucket
func (t ItemType) IsActionLike() bool {
	return t == ItemTypeAction
}

// Slug returns the lowercased type name used inside canonical ids
func (t ItemType) Slug() string {
	return strings.ToLower(string(t))
}

// String returns the string representation of the item type
func (t ItemType) String() string {
	return string(t)
}

// ItemTypeFromSlug resolves the lowercased canonical-id segment back to an ItemType
func ItemTypeFromSlug(slug string) (ItemType, bool) {
	for _, t := range AllItemTypes() {
		if t.Slug() == slug {
			return t, true
		}
	}
	return "", false
}

// Bucket is the workflow state of a work item
type Bucket string

const (
	BucketInbox     Bucket = "inbox"
	BucketNext      Bucket = "next"
	BucketWaiting   Bucket = "waiting"
	BucketCalendar  Bucket = "calendar"
	BucketSomeday   Bucket = "someday"
	BucketReference Bucket = "reference"
	BucketProject   Bucket = "project"
	BucketCompleted Bucket = "completed"
)

// AllBuckets returns every bucket in the fixed enumeration
func AllBuckets() []Bucket {
	return []Bucket{
		BucketInbox,
		BucketNext,
		BucketWaiting,
		BucketCalendar,
		BucketSomeday,
		BucketReference,
		BucketProject,
		BucketCompleted,
	}
}

// InboxTriageTargets returns the buckets an inbox item may be triaged into
func InboxTriageTargets() []Bucket {
	return []Bucket{
		BucketNext,
		BucketWaiting,
		BucketSomeday,
		BucketCalendar,
		BucketReference,
	}
}

// IsValid checks if the bucket belongs to the fixed enumeration
func (b Bucket) IsValid() bool {
	switch b {
	case BucketInbox, BucketNext, BucketWaiting, BucketCalendar,
		BucketSomeday, BucketReference, BucketProject, BucketCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the bucket
func (b Bucket) String() string {
	return string(b)
}

// BucketNames joins the bucket enumeration for human-readable messages
func BucketNames() string {
	names := make([]string, 0, len(AllBuckets()))
	for _, b := range AllBuckets() {
		names = append(names, string(b))
	}
	return strings.Join(names, ", ")
}
