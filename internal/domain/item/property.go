package item

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// PropertyValueType is the JSON-LD @type of every additionalProperty entry
const PropertyValueType = "PropertyValue"

// PropertyID names one entry of the additionalProperty bag
type PropertyID string

// Application property ids
const (
	PropBucket      PropertyID = "app:bucket"
	PropRawCapture  PropertyID = "app:rawCapture"
	PropProjectRefs PropertyID = "app:projectRefs"
	PropOrgRef      PropertyID = "app:orgRef"
	PropOrgRole     PropertyID = "app:orgRole"
	PropIsFocused   PropertyID = "app:isFocused"
	PropDueDate     PropertyID = "app:dueDate"
	PropContexts    PropertyID = "app:contexts"
)

// String returns the string representation of the property id
func (p PropertyID) String() string {
	return string(p)
}

// Value is the closed set of values an additionalProperty entry may hold:
// StringValue, BoolValue or ListValue.
type Value interface {
	isValue()
}

// StringValue is a plain text property value
type StringValue string

// BoolValue is a flag property value
type BoolValue bool

// ListValue is an ordered list of text values
type ListValue []string

func (StringValue) isValue() {}
func (BoolValue) isValue()   {}
func (ListValue) isValue()   {}

// ValueKind classifies a Value
type ValueKind string

const (
	KindString ValueKind = "string"
	KindBool   ValueKind = "bool"
	KindList   ValueKind = "list"
)

// KindOf returns the kind of v
func KindOf(v Value) ValueKind {
	switch v.(type) {
	case StringValue:
		return KindString
	case BoolValue:
		return KindBool
	case ListValue:
		return KindList
	default:
		return ""
	}
}

// declaredKinds is the declared value kind of each known property
var declaredKinds = map[PropertyID]ValueKind{
	PropBucket:      KindString,
	PropRawCapture:  KindString,
	PropOrgRef:      KindString,
	PropOrgRole:     KindString,
	PropDueDate:     KindString,
	PropIsFocused:   KindBool,
	PropProjectRefs: KindList,
	PropContexts:    KindList,
}

// DeclaredKind returns the kind a known property must hold
func DeclaredKind(id PropertyID) (ValueKind, bool) {
	kind, ok := declaredKinds[id]
	return kind, ok
}

// ErrUnsupportedValue is returned when decoding a property value outside the closed value set
var ErrUnsupportedValue = errors.New("item: unsupported property value")

// Properties is the additionalProperty bag: an insertion-ordered map from
// property id to value. The zero value is an empty bag ready to use.
type Properties struct {
	order  []PropertyID
	values map[PropertyID]Value
}

// NewProperties builds a bag from id/value pairs; later duplicates are ignored.
func NewProperties(entries ...PropertyEntry) Properties {
	var p Properties
	for _, e := range entries {
		if _, exists := p.values[e.PropertyID]; exists {
			continue
		}
		p.Set(e.PropertyID, e.Value)
	}
	return p
}

// PropertyEntry is one id/value pair
type PropertyEntry struct {
	PropertyID PropertyID
	Value      Value
}

// Get returns the value stored under id
func (p Properties) Get(id PropertyID) (Value, bool) {
	v, ok := p.values[id]
	return v, ok
}

// Set stores v under id, keeping the original position when id already exists
func (p *Properties) Set(id PropertyID, v Value) {
	if p.values == nil {
		p.values = make(map[PropertyID]Value)
	}
	if _, exists := p.values[id]; !exists {
		p.order = append(p.order, id)
	}
	p.values[id] = v
}

// Len returns the number of entries
func (p Properties) Len() int {
	return len(p.order)
}

// IsZero reports whether the bag holds no entries
func (p Properties) IsZero() bool {
	return len(p.order) == 0
}

// IDs returns the property ids in insertion order
func (p Properties) IDs() []PropertyID {
	return slices.Clone(p.order)
}

// All iterates entries in insertion order
func (p Properties) All() iter.Seq2[PropertyID, Value] {
	return func(yield func(PropertyID, Value) bool) {
		for _, id := range p.order {
			if !yield(id, p.values[id]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the bag
func (p Properties) Clone() Properties {
	var c Properties
	for id, v := range p.All() {
		if list, ok := v.(ListValue); ok {
			v = slices.Clone(list)
		}
		c.Set(id, v)
	}
	return c
}

type propertyValueJSON struct {
	Type       string          `json:"@type"`
	PropertyID PropertyID      `json:"propertyID"`
	Value      json.RawMessage `json:"value"`
}

// MarshalJSON renders the bag as the ordered JSON-LD PropertyValue list
func (p Properties) MarshalJSON() ([]byte, error) {
	entries := make([]propertyValueJSON, 0, len(p.order))
	for id, v := range p.All() {
		raw, err := marshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", id, err)
		}
		entries = append(entries, propertyValueJSON{
			Type:       PropertyValueType,
			PropertyID: id,
			Value:      raw,
		})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the JSON-LD PropertyValue list. The first entry for a
// property id wins; later duplicates are dropped. Entries for undeclared ids
// whose value falls outside the closed value set are skipped; for declared
// ids such a value is an error.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var entries []propertyValueJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	var decoded Properties
	for _, e := range entries {
		if _, exists := decoded.values[e.PropertyID]; exists {
			continue
		}
		v, err := unmarshalValue(e.Value)
		if err != nil {
			if _, declared := declaredKinds[e.PropertyID]; !declared && errors.Is(err, ErrUnsupportedValue) {
				continue
			}
			return fmt.Errorf("property %s: %w", e.PropertyID, err)
		}
		decoded.Set(e.PropertyID, v)
	}
	*p = decoded
	return nil
}

func marshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case StringValue:
		return json.Marshal(string(val))
	case BoolValue:
		return json.Marshal(bool(val))
	case ListValue:
		if val == nil {
			return []byte("[]"), nil
		}
		return json.Marshal([]string(val))
	default:
		return nil, ErrUnsupportedValue
	}
}

func unmarshalValue(raw json.RawMessage) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: missing value", ErrUnsupportedValue)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return StringValue(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, err
		}
		return BoolValue(b), nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: lists must hold strings", ErrUnsupportedValue)
		}
		if list == nil {
			list = []string{}
		}
		return ListValue(list), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, string(trimmed))
	}
}
