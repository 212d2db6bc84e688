package item

// SchemaContext is the JSON-LD @context emitted on every document
const SchemaContext = "https://schema.org"

// Document is the canonical linked-data representation of one domain entity.
// Native vocabulary fields sit at the top level; everything application
// specific lives in AdditionalProperty.
//
// Documents are never mutated in place once built: updates arrive as Patch
// fragments and ApplyPatch returns a new document.
type Document struct {
	Context     string   `json:"@context,omitempty"`
	ID          string   `json:"@id"`
	Type        ItemType `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Email       string   `json:"email,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	URL         string   `json:"url,omitempty"`

	AdditionalProperty Properties `json:"additionalProperty,omitzero"`
}

// ReadAdditionalProperty returns the value stored under id. It reports false
// when doc is nil, the bag is absent, or no entry matches. Lookup is exact
// and case-sensitive.
func ReadAdditionalProperty(doc *Document, id PropertyID) (Value, bool) {
	if doc == nil {
		return nil, false
	}
	return doc.AdditionalProperty.Get(id)
}

// Property returns the additionalProperty value stored under id
func (d *Document) Property(id PropertyID) (Value, bool) {
	return ReadAdditionalProperty(d, id)
}

// StringProperty returns the value under id when it holds a StringValue
func (d *Document) StringProperty(id PropertyID) (string, bool) {
	v, ok := ReadAdditionalProperty(d, id)
	if !ok {
		return "", false
	}
	s, ok := v.(StringValue)
	return string(s), ok
}

// BoolProperty returns the value under id when it holds a BoolValue
func (d *Document) BoolProperty(id PropertyID) (bool, bool) {
	v, ok := ReadAdditionalProperty(d, id)
	if !ok {
		return false, false
	}
	b, ok := v.(BoolValue)
	return bool(b), ok
}

// ListProperty returns the value under id when it holds a ListValue
func (d *Document) ListProperty(id PropertyID) ([]string, bool) {
	v, ok := ReadAdditionalProperty(d, id)
	if !ok {
		return nil, false
	}
	l, ok := v.(ListValue)
	return []string(l), ok
}

// Bucket returns the app:bucket value. The bucket is not checked against the enumeration.
func (d *Document) Bucket() (Bucket, bool) {
	s, ok := d.StringProperty(PropBucket)
	return Bucket(s), ok
}

// CanonicalID parses the document's @id
func (d *Document) CanonicalID() (CanonicalID, error) {
	return ParseCanonicalID(d.ID)
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.AdditionalProperty = d.AdditionalProperty.Clone()
	return &c
}

// ApplyPatch returns a copy of the document with every patch entry merged in:
// existing property ids are replaced in place, new ids are appended in order.
// The receiver is left untouched.
func (d *Document) ApplyPatch(p Patch) *Document {
	next := d.Clone()
	if next == nil {
		next = &Document{}
	}
	for id, v := range p.AdditionalProperty.All() {
		next.AdditionalProperty.Set(id, v)
	}
	return next
}
