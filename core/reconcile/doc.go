// Package reconcile keeps persisted relations consistent with the references
// embedded in content property values.
//
// On every save of a document, media item or member, the engine extracts the
// entities referenced by the entity's properties, maps them onto automatic
// relation types and applies the minimal insert/delete diff to the relation
// store.
//
// # Architecture
//
// The package consists of three main components:
//
// 1. Engine: classifies the extracted references, resolves relation types and
// target node ids, and diffs the desired relations against the persisted ones.
//
// 2. Collaborators: the Extractor, EditorRegistry, RelationTypeRegistry,
// EntityResolver and RelationStore interfaces. Persistence-backed
// implementations are bound to a caller-owned transaction through a Scope.
//
// 3. TypeCache: optional TTL cache with stampede protection for relation type
// lookups.
//
// # Safety boundary
//
// Only relation types declared as automatic by a property editor are ever
// created or deleted. Relations of any other type are invisible to the engine,
// even when they share a parent with automatic relations.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(editors.NewExtractor(logger), registry, logger)
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    scope := store.NewScope(tx, cfg.Relations)
//	    _, err := engine.ReconcileBatch(ctx, scope, entities)
//	    return err
//	})
package reconcile
