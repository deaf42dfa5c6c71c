package store

import (
	"content-relations/core/reconcile"

	"gorm.io/gorm"
)

// Scope binds the relation collaborators to one gorm handle, usually a
// transaction opened by the caller.
type Scope struct {
	relations *RelationStore
	types     *TypeRegistry
	entities  *EntityResolver
}

// NewScope creates a scope over tx.
func NewScope(tx *gorm.DB, cfg reconcile.Config) *Scope {
	cfg = cfg.WithDefaults()
	return &Scope{
		relations: NewRelationStore(tx, cfg.PageSize, cfg.InsertBatchSize),
		types:     NewTypeRegistry(tx),
		entities:  NewEntityResolver(tx, cfg.MaxParameters),
	}
}

func (s *Scope) Relations() reconcile.RelationStore            { return s.relations }
func (s *Scope) RelationTypes() reconcile.RelationTypeRegistry { return s.types }
func (s *Scope) Entities() reconcile.EntityResolver            { return s.entities }
