package item

// Patch is a merge-style partial update of a document's additionalProperty bag
type Patch struct {
	AdditionalProperty Properties `json:"additionalProperty"`
}

// BuildBucketPatch produces a single-entry patch moving an item to bucket
func BuildBucketPatch(bucket Bucket) Patch {
	return Patch{
		AdditionalProperty: NewProperties(PropertyEntry{
			PropertyID: PropBucket,
			Value:      StringValue(bucket),
		}),
	}
}

// BuildFocusPatch produces a single-entry patch setting the focus flag
func BuildFocusPatch(isFocused bool) Patch {
	return Patch{
		AdditionalProperty: NewProperties(PropertyEntry{
			PropertyID: PropIsFocused,
			Value:      BoolValue(isFocused),
		}),
	}
}

// Bucket returns the bucket carried by the patch, if any
func (p Patch) Bucket() (Bucket, bool) {
	v, ok := p.AdditionalProperty.Get(PropBucket)
	if !ok {
		return "", false
	}
	s, ok := v.(StringValue)
	return Bucket(s), ok
}
