package reconcile

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Reference is a single entity reference found in a property value.
// An empty RelationTypeAlias means the editor emitted the reference without
// associating it to a relation type.
type Reference struct {
	// Target identifies the referenced entity.
	Target Udi

	// RelationTypeAlias is the relation type the reference should be tracked under.
	RelationTypeAlias string
}

// ReferenceSet is a set of references. Duplicate (target, alias) pairs collapse.
type ReferenceSet map[Reference]struct{}

// Add inserts the references into the set.
func (s ReferenceSet) Add(refs ...Reference) {
	for _, ref := range refs {
		s[ref] = struct{}{}
	}
}

// Targets returns the distinct targets of the set.
func (s ReferenceSet) Targets() []Udi {
	seen := make(map[Udi]struct{}, len(s))
	targets := make([]Udi, 0, len(s))
	for ref := range s {
		if _, ok := seen[ref.Target]; ok {
			continue
		}
		seen[ref.Target] = struct{}{}
		targets = append(targets, ref.Target)
	}
	return targets
}

// AliasSet is a set of relation type aliases.
type AliasSet map[string]struct{}

// NewAliasSet builds a set from the given aliases, ignoring empty ones.
func NewAliasSet(aliases ...string) AliasSet {
	s := make(AliasSet, len(aliases))
	s.Add(aliases...)
	return s
}

// Add inserts the aliases into the set, ignoring empty ones.
func (s AliasSet) Add(aliases ...string) {
	for _, alias := range aliases {
		if alias != "" {
			s[alias] = struct{}{}
		}
	}
}

// Contains reports whether the alias is part of the set.
func (s AliasSet) Contains(alias string) bool {
	_, ok := s[alias]
	return ok
}

// Sorted returns the aliases in lexical order.
func (s AliasSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for alias := range s {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Property is one property of a content-like entity.
type Property struct {
	// Alias is the property alias (e.g. "bodyText").
	Alias string `json:"alias"`

	// EditorAlias identifies the property editor that owns the value
	// (e.g. "Umbraco.RichText").
	EditorAlias string `json:"editorAlias"`

	// Value is the raw stored value.
	Value any `json:"value"`
}

// Entity is a saved document, media item or member.
type Entity struct {
	// ID is the internal node id, used as the relation parent id.
	ID int

	// Key is the entity's globally unique key.
	Key uuid.UUID

	// Kind is the entity type (document, media, member).
	Kind string

	// Properties holds the entity's current property values.
	Properties []Property
}

// RelationType is a relation type registry entry.
type RelationType struct {
	ID    int
	Alias string
}

// Relation is a persisted, directed, typed edge between two nodes.
// It is unique by (ParentID, ChildID, RelationTypeID).
type Relation struct {
	// ID is the store's row id; zero for relations not yet persisted.
	ID int `json:"id"`

	ParentID       int `json:"parent_id"`
	ChildID        int `json:"child_id"`
	RelationTypeID int `json:"relation_type_id"`

	// CreateDate is set by the store on insert.
	CreateDate time.Time `json:"create_date"`

	// Comment is optional free text.
	Comment string `json:"comment,omitempty"`
}

// RelationKey identifies a relation within one parent.
type RelationKey struct {
	ChildID        int
	RelationTypeID int
}

// Key returns the relation's key within its parent.
func (r Relation) Key() RelationKey {
	return RelationKey{ChildID: r.ChildID, RelationTypeID: r.RelationTypeID}
}

// SkipReason classifies why a reference did not produce a relation.
type SkipReason string

const (
	// SkipNoAlias is used when the reference carries no relation type alias.
	SkipNoAlias SkipReason = "no_alias"
	// SkipNotAutomatic is used when the alias is outside the automatic set.
	SkipNotAutomatic SkipReason = "not_automatic"
	// SkipUnknownType is used when the alias is missing from the registry.
	SkipUnknownType SkipReason = "unknown_relation_type"
	// SkipUnresolvedTarget is used when the target has no internal id.
	SkipUnresolvedTarget SkipReason = "unresolved_target"
)

// Result reports what a single reconciliation did.
type Result struct {
	// ParentID is the reconciled entity's id.
	ParentID int `json:"parent_id"`

	// Kind is the reconciled entity's type.
	Kind string `json:"kind"`

	// Cleared is true when the entity had no references and all of its
	// automatic relations were removed in bulk.
	Cleared bool `json:"cleared"`

	// Inserted counts relations added.
	Inserted int `json:"inserted"`

	// Deleted counts stale relations removed one by one.
	Deleted int `json:"deleted"`

	// Unchanged counts relations present both before and after.
	Unchanged int `json:"unchanged"`

	// Skipped counts dropped references per reason.
	Skipped map[SkipReason]int `json:"skipped,omitempty"`
}
