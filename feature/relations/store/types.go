package store

import (
	"context"
	"fmt"

	"content-relations/feature/relations/models"

	"gorm.io/gorm"
)

// TypeRegistry implements reconcile.RelationTypeRegistry on the relation type table.
type TypeRegistry struct {
	db *gorm.DB
}

// NewTypeRegistry creates a relation type registry.
func NewTypeRegistry(db *gorm.DB) *TypeRegistry {
	return &TypeRegistry{db: db}
}

// ResolveRelationTypeIDs returns the ids of the aliases that exist.
func (r *TypeRegistry) ResolveRelationTypeIDs(ctx context.Context, aliases []string) (map[string]int, error) {
	ids := make(map[string]int, len(aliases))
	if len(aliases) == 0 {
		return ids, nil
	}

	var rows []models.RelationType
	if err := r.db.WithContext(ctx).Where("alias IN ?", aliases).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read relation types: %w", err)
	}
	for _, row := range rows {
		ids[row.Alias] = row.ID
	}
	return ids, nil
}

// List returns every relation type ordered by id.
func (r *TypeRegistry) List(ctx context.Context) ([]models.RelationType, error) {
	var rows []models.RelationType
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list relation types: %w", err)
	}
	return rows, nil
}
