package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"content-relations/core/reconcile"
	"content-relations/feature/relations/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityLoader reads entities and their property values from the node and
// property data tables.
type EntityLoader struct {
	db            *gorm.DB
	maxParameters int
}

// NewEntityLoader creates an entity loader.
func NewEntityLoader(db *gorm.DB, maxParameters int) *EntityLoader {
	if maxParameters <= 1 {
		maxParameters = reconcile.DefaultMaxParameters
	}
	return &EntityLoader{db: db, maxParameters: maxParameters}
}

// WithTx returns a loader reading through tx.
func (l *EntityLoader) WithTx(tx *gorm.DB) *EntityLoader {
	return &EntityLoader{db: tx, maxParameters: l.maxParameters}
}

// Load returns the entities of the kind with the given ids, ordered by id.
// Object types are compared case-insensitively.
// Ids that do not exist, or that belong to another kind, are left out.
func (l *EntityLoader) Load(ctx context.Context, kind string, ids []int) ([]reconcile.Entity, error) {
	objectType, ok := models.ObjectTypeFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	chunkSize := l.maxParameters - 1
	var nodes []models.Node
	for start := 0; start < len(ids); start += chunkSize {
		end := min(start+chunkSize, len(ids))
		var chunk []models.Node
		err := l.db.WithContext(ctx).
			Where("LOWER(nodeObjectType) = ? AND id IN ?", objectType, ids[start:end]).
			Find(&chunk).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load %s nodes: %w", kind, err)
		}
		nodes = append(nodes, chunk...)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	nodeIDs := make([]int, len(nodes))
	for i, node := range nodes {
		nodeIDs[i] = node.ID
	}
	properties, err := l.properties(ctx, nodeIDs)
	if err != nil {
		return nil, err
	}

	entities := make([]reconcile.Entity, 0, len(nodes))
	for _, node := range nodes {
		key, _ := uuid.Parse(strings.TrimSpace(node.UniqueID))
		entities = append(entities, reconcile.Entity{
			ID:         node.ID,
			Key:        key,
			Kind:       kind,
			Properties: properties[node.ID],
		})
	}
	return entities, nil
}

// NextIDs returns up to limit ids of the kind greater than afterID, in
// ascending order. Trashed nodes are included.
func (l *EntityLoader) NextIDs(ctx context.Context, kind string, afterID, limit int) ([]int, error) {
	objectType, ok := models.ObjectTypeFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	var ids []int
	err := l.db.WithContext(ctx).
		Model(&models.Node{}).
		Where("LOWER(nodeObjectType) = ? AND id > ?", objectType, afterID).
		Order("id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", kind, err)
	}
	return ids, nil
}

func (l *EntityLoader) properties(ctx context.Context, nodeIDs []int) (map[int][]reconcile.Property, error) {
	out := make(map[int][]reconcile.Property, len(nodeIDs))
	for start := 0; start < len(nodeIDs); start += l.maxParameters {
		end := min(start+l.maxParameters, len(nodeIDs))
		var rows []models.PropertyData
		err := l.db.WithContext(ctx).
			Where("nodeId IN ?", nodeIDs[start:end]).
			Order("id").
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load property data: %w", err)
		}
		for _, row := range rows {
			out[row.NodeID] = append(out[row.NodeID], reconcile.Property{
				Alias:       row.PropertyAlias,
				EditorAlias: row.EditorAlias,
				Value:       row.TextValue,
			})
		}
	}
	return out, nil
}
