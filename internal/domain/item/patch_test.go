package item

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBucketPatch(t *testing.T) {
	patch := BuildBucketPatch(BucketWaiting)

	data, err := json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"additionalProperty":[{"@type":"PropertyValue","propertyID":"app:bucket","value":"waiting"}]}`, string(data))

	bucket, ok := patch.Bucket()
	assert.True(t, ok)
	assert.Equal(t, BucketWaiting, bucket)
}

func TestBuildBucketPatch_UnknownBucketPassesThrough(t *testing.T) {
	bucket, ok := BuildBucketPatch("invalid").Bucket()
	assert.True(t, ok)
	assert.Equal(t, Bucket("invalid"), bucket)
}

func TestBuildFocusPatch(t *testing.T) {
	tests := []struct {
		focused bool
		want    string
	}{
		{true, `{"additionalProperty":[{"@type":"PropertyValue","propertyID":"app:isFocused","value":true}]}`},
		{false, `{"additionalProperty":[{"@type":"PropertyValue","propertyID":"app:isFocused","value":false}]}`},
	}

	for _, tc := range tests {
		data, err := json.Marshal(BuildFocusPatch(tc.focused))
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(data))
		_, ok := BuildFocusPatch(tc.focused).Bucket()
		assert.False(t, ok)
	}
}

func TestPatch_UnmarshalJSON(t *testing.T) {
	var patch Patch
	err := json.Unmarshal([]byte(`{"additionalProperty":[{"@type":"PropertyValue","propertyID":"app:bucket","value":"someday"}]}`), &patch)
	require.NoError(t, err)

	bucket, ok := patch.Bucket()
	assert.True(t, ok)
	assert.Equal(t, BucketSomeday, bucket)
}
