package item

import "slices"

// CreateSpec carries the loosely-typed fields supplied when creating an item.
// Zero values mean "not supplied" and are never emitted.
type CreateSpec struct {
	Type  ItemType
	Name  string
	OrgID string

	// Native vocabulary fields
	Description string
	Email       string
	Telephone   string
	URL         string

	// Application fields, packed into additionalProperty
	Bucket     Bucket
	RawCapture string
	ProjectID  string
	OrgRef     string
	OrgRole    string
	IsFocused  *bool
	DueDate    string
	Contexts   []string
}

// BuildCreateItem assembles a normalized document for a new entity and mints
// its canonical id. It never fails: unknown or absent optional fields are
// skipped silently.
//
// Action-like items always record app:rawCapture (the supplied RawCapture,
// otherwise the name) so the original capture text survives later renames.
// A project link is always emitted as a list.
func BuildCreateItem(spec CreateSpec) *Document {
	doc := &Document{
		Context:     SchemaContext,
		ID:          NewCanonicalID(spec.Type, spec.OrgID).String(),
		Type:        spec.Type,
		Name:        spec.Name,
		Description: spec.Description,
		Email:       spec.Email,
		Telephone:   spec.Telephone,
		URL:         spec.URL,
	}

	props := &doc.AdditionalProperty
	if spec.Type.IsActionLike() {
		capture := spec.RawCapture
		if capture == "" {
			capture = spec.Name
		}
		props.Set(PropRawCapture, StringValue(capture))
	}
	setString(props, PropBucket, string(spec.Bucket))
	if spec.ProjectID != "" {
		props.Set(PropProjectRefs, ListValue{spec.ProjectID})
	}
	if spec.IsFocused != nil {
		props.Set(PropIsFocused, BoolValue(*spec.IsFocused))
	}
	setString(props, PropDueDate, spec.DueDate)
	if len(spec.Contexts) > 0 {
		props.Set(PropContexts, ListValue(slices.Clone(spec.Contexts)))
	}
	setString(props, PropOrgRef, spec.OrgRef)
	setString(props, PropOrgRole, spec.OrgRole)

	return doc
}

func setString(props *Properties, id PropertyID, value string) {
	if value == "" {
		return
	}
	props.Set(id, StringValue(value))
}
