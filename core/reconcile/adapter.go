package reconcile

import "context"

// ReferenceFactory is the optional capability of a property editor to report
// the entities referenced by one of its values.
type ReferenceFactory interface {
	// GetReferences returns the references embedded in the value.
	// Values that cannot be parsed yield no references.
	GetReferences(value any) []Reference

	// AutomaticRelationTypes returns the relation type aliases this editor may
	// emit and that the engine is allowed to manage.
	AutomaticRelationTypes() []string
}

// EditorRegistry maps property editor aliases to their reference capability.
type EditorRegistry interface {
	// ReferenceFactory returns the capability registered for an editor alias.
	// ok is false for unknown editors and for editors without the capability.
	ReferenceFactory(editorAlias string) (factory ReferenceFactory, ok bool)

	// Factories returns every registered capability keyed by editor alias.
	Factories() map[string]ReferenceFactory
}

// Extractor collects references from a set of properties.
type Extractor interface {
	// ExtractReferences returns the references found in the properties and the
	// global set of automatic relation type aliases declared by the registry.
	ExtractReferences(properties []Property, editors EditorRegistry) (ReferenceSet, AliasSet)
}

// RelationTypeRegistry resolves relation type aliases to ids.
type RelationTypeRegistry interface {
	// ResolveRelationTypeIDs returns the ids of the aliases that exist.
	// Unknown aliases are absent from the result.
	ResolveRelationTypeIDs(ctx context.Context, aliases []string) (map[string]int, error)
}

// EntityResolver maps entity references to internal node ids.
type EntityResolver interface {
	// ResolveEntityIDs returns the ids of the references that exist.
	// Implementations chunk the lookup to respect the per-query parameter limit.
	ResolveEntityIDs(ctx context.Context, refs []Udi) (map[Udi]int, error)
}

// RelationStore persists relations.
type RelationStore interface {
	// DeleteByParentAndTypes removes every relation of the parent with one of the types.
	DeleteByParentAndTypes(ctx context.Context, parentID int, relationTypeIDs []int) error

	// GetByParentAndTypes returns every relation of the parent with one of the types.
	GetByParentAndTypes(ctx context.Context, parentID int, relationTypeIDs []int) ([]Relation, error)

	// BulkInsert persists the relations in a single call.
	BulkInsert(ctx context.Context, relations []Relation) error

	// Delete removes a single relation.
	Delete(ctx context.Context, relation Relation) error
}

// Scope bundles the collaborators bound to one caller-owned unit of work.
// Every call made through a scope shares the same transaction.
type Scope interface {
	Relations() RelationStore
	RelationTypes() RelationTypeRegistry
	Entities() EntityResolver
}
