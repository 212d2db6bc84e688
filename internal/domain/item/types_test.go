package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemType_IsValid(t *testing.T) {
	tests := []struct {
		itemType ItemType
		want     bool
	}{
		{ItemTypeAction, true},
		{ItemTypeProject, true},
		{ItemTypePerson, true},
		{ItemTypeReference, true},
		{ItemTypeOrganization, true},
		{"Thing", false},
		{"action", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(string(tc.itemType), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.itemType.IsValid())
		})
	}
}

func TestItemType_Slug(t *testing.T) {
	for _, itemType := range AllItemTypes() {
		got, ok := ItemTypeFromSlug(itemType.Slug())
		assert.True(t, ok)
		assert.Equal(t, itemType, got)
	}

	_, ok := ItemTypeFromSlug("Action")
	assert.False(t, ok)
}

func TestItemType_IsActionLike(t *testing.T) {
	assert.True(t, ItemTypeAction.IsActionLike())
	assert.False(t, ItemTypeProject.IsActionLike())
	assert.False(t, ItemTypePerson.IsActionLike())
}

func TestBucket_IsValid(t *testing.T) {
	for _, b := range AllBuckets() {
		assert.True(t, b.IsValid(), b)
	}
	assert.False(t, Bucket("invalid").IsValid())
	assert.False(t, Bucket("Next").IsValid())
	assert.False(t, Bucket("").IsValid())
}

func TestBucket_Enumerations(t *testing.T) {
	assert.Len(t, AllBuckets(), 8)
	for _, b := range InboxTriageTargets() {
		assert.Contains(t, AllBuckets(), b)
	}
	assert.NotContains(t, InboxTriageTargets(), BucketInbox)
	assert.NotContains(t, InboxTriageTargets(), BucketCompleted)
	assert.NotContains(t, InboxTriageTargets(), BucketProject)

	assert.Equal(t, "inbox, next, waiting, calendar, someday, reference, project, completed", BucketNames())
}
