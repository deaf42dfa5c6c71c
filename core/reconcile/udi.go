package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UdiScheme is the URI scheme used by every entity reference.
const UdiScheme = "umb"

// Entity types that can be referenced through a UDI.
const (
	EntityTypeDocument = "document"
	EntityTypeMedia    = "media"
	EntityTypeMember   = "member"
)

// Udi is a globally unique, stable reference to an entity, independent of
// its internal integer id. Its string form is umb://<entity-type>/<32 hex>.
type Udi struct {
	EntityType string
	Key        uuid.UUID
}

// NewUdi builds a UDI for the given entity type and key.
func NewUdi(entityType string, key uuid.UUID) Udi {
	return Udi{EntityType: strings.ToLower(entityType), Key: key}
}

// ParseUdi parses the string form of a GUID UDI.
// The key may be written with or without dashes.
func ParseUdi(s string) (Udi, error) {
	s = strings.TrimSpace(s)
	prefix := UdiScheme + "://"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return Udi{}, fmt.Errorf("invalid udi %q: missing %s scheme", s, prefix)
	}

	rest := s[len(prefix):]
	entityType, id, ok := strings.Cut(rest, "/")
	if !ok || entityType == "" || id == "" {
		return Udi{}, fmt.Errorf("invalid udi %q: expected %s<type>/<key>", s, prefix)
	}

	key, err := uuid.Parse(id)
	if err != nil {
		return Udi{}, fmt.Errorf("invalid udi %q: %w", s, err)
	}

	return NewUdi(entityType, key), nil
}

// String returns the canonical form with the key as 32 lowercase hex digits.
func (u Udi) String() string {
	return fmt.Sprintf("%s://%s/%s", UdiScheme, u.EntityType, strings.ReplaceAll(u.Key.String(), "-", ""))
}

// IsZero reports whether the UDI is unset.
func (u Udi) IsZero() bool {
	return u.EntityType == "" && u.Key == uuid.Nil
}
