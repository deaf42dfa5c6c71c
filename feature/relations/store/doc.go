// Package store persists relations with GORM.
//
// RelationStore, TypeRegistry and EntityResolver implement the reconciliation
// engine's collaborator interfaces. NewScope binds all three to one handle,
// normally a transaction opened by the caller:
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    _, err := engine.Reconcile(ctx, store.NewScope(tx, cfg), entity)
//	    return err
//	})
//
// EntityLoader reads entities and their property values, Queries serves the
// read models of the HTTP API, the exporter and the integrity checks, and
// Seed prepares a fresh database.
package store
