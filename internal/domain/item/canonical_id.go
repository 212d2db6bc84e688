package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	canonicalIDPrefix = "urn:app:"
	orgSegment        = "org"
)

// ErrInvalidCanonicalID is returned when a string is not a canonical id in either form
var ErrInvalidCanonicalID = errors.New("item: invalid canonical id")

// CanonicalID identifies one entity for its whole lifetime.
//
// Two variants share this type:
//
//	urn:app:org:<orgId>:<entity-type>:<uuid>   org-scoped
//	urn:app:<entity-type>:<uuid>               legacy, minted without an org context
//
// Both must be accepted everywhere; callers branch on IsOrgScoped, never on length.
type CanonicalID struct {
	orgID      string
	entityType string
	id         uuid.UUID
}

// NewCanonicalID mints a fresh id for an entity of the given type.
// An empty orgID yields the legacy form.
func NewCanonicalID(t ItemType, orgID string) CanonicalID {
	return CanonicalID{
		orgID:      orgID,
		entityType: t.Slug(),
		id:         uuid.New(),
	}
}

// ParseCanonicalID parses either id form by matching its colon-separated segments.
func ParseCanonicalID(s string) (CanonicalID, error) {
	rest, ok := strings.CutPrefix(s, canonicalIDPrefix)
	if !ok {
		return CanonicalID{}, fmt.Errorf("%w: missing %q prefix: %q", ErrInvalidCanonicalID, canonicalIDPrefix, s)
	}

	segments := strings.Split(rest, ":")
	switch {
	case len(segments) == 4 && segments[0] == orgSegment:
		if segments[1] == "" {
			return CanonicalID{}, fmt.Errorf("%w: empty org id: %q", ErrInvalidCanonicalID, s)
		}
		return newParsedID(segments[1], segments[2], segments[3], s)
	case len(segments) == 2:
		return newParsedID("", segments[0], segments[1], s)
	default:
		return CanonicalID{}, fmt.Errorf("%w: unexpected segment count: %q", ErrInvalidCanonicalID, s)
	}
}

func newParsedID(orgID, entityType, rawUUID, original string) (CanonicalID, error) {
	if entityType == "" || entityType != strings.ToLower(entityType) {
		return CanonicalID{}, fmt.Errorf("%w: entity type must be non-empty lowercase: %q", ErrInvalidCanonicalID, original)
	}
	parsed, err := uuid.Parse(rawUUID)
	if err != nil {
		return CanonicalID{}, fmt.Errorf("%w: %q: %v", ErrInvalidCanonicalID, original, err)
	}
	return CanonicalID{orgID: orgID, entityType: entityType, id: parsed}, nil
}

// IsValidOrgID reports whether orgID can scope a canonical id: non-empty
// and free of the ':' segment separator.
func IsValidOrgID(orgID string) bool {
	return orgID != "" && !strings.Contains(orgID, ":")
}

// IsValidCanonicalID reports whether s parses in either form
func IsValidCanonicalID(s string) bool {
	_, err := ParseCanonicalID(s)
	return err == nil
}

// String renders the id in its bit-exact URN form
func (c CanonicalID) String() string {
	if c.IsZero() {
		return ""
	}
	if c.IsOrgScoped() {
		return canonicalIDPrefix + orgSegment + ":" + c.orgID + ":" + c.entityType + ":" + c.id.String()
	}
	return canonicalIDPrefix + c.entityType + ":" + c.id.String()
}

// IsOrgScoped reports whether the id carries an organization segment
func (c CanonicalID) IsOrgScoped() bool {
	return c.orgID != ""
}

// OrgID returns the organization segment, empty for legacy ids
func (c CanonicalID) OrgID() string {
	return c.orgID
}

// EntityType returns the lowercased entity-type segment
func (c CanonicalID) EntityType() string {
	return c.entityType
}

// ItemType resolves the entity-type segment to a known ItemType
func (c CanonicalID) ItemType() (ItemType, bool) {
	return ItemTypeFromSlug(c.entityType)
}

// UUID returns the entity uuid segment
func (c CanonicalID) UUID() uuid.UUID {
	return c.id
}

// IsZero reports whether the id was never minted or parsed
func (c CanonicalID) IsZero() bool {
	return c.entityType == "" && c.id == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler
func (c CanonicalID) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CanonicalID) UnmarshalText(text []byte) error {
	parsed, err := ParseCanonicalID(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
