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

// EntityResolver implements reconcile.EntityResolver on the node table.
type EntityResolver struct {
	db            *gorm.DB
	maxParameters int
}

// NewEntityResolver creates a resolver issuing at most maxParameters bound
// parameters per query.
func NewEntityResolver(db *gorm.DB, maxParameters int) *EntityResolver {
	if maxParameters <= 1 {
		maxParameters = reconcile.DefaultMaxParameters
	}
	return &EntityResolver{db: db, maxParameters: maxParameters}
}

// ResolveEntityIDs maps UDIs to node ids. References to entity types that are
// not stored as nodes, and keys with no node, are absent from the result.
func (r *EntityResolver) ResolveEntityIDs(ctx context.Context, refs []reconcile.Udi) (map[reconcile.Udi]int, error) {
	out := make(map[reconcile.Udi]int, len(refs))

	byObjectType := make(map[string][]reconcile.Udi)
	for _, udi := range refs {
		objectType, ok := models.ObjectTypeFor(udi.EntityType)
		if !ok {
			continue
		}
		byObjectType[objectType] = append(byObjectType[objectType], udi)
	}

	objectTypes := make([]string, 0, len(byObjectType))
	for objectType := range byObjectType {
		objectTypes = append(objectTypes, objectType)
	}
	sort.Strings(objectTypes)

	// GUIDs are matched case-insensitively: stored values may be upper case.
	// One parameter goes to the object type filter.
	chunkSize := r.maxParameters - 1

	for _, objectType := range objectTypes {
		udis := byObjectType[objectType]
		byKey := make(map[uuid.UUID]reconcile.Udi, len(udis))
		keys := make([]string, 0, len(udis))
		for _, udi := range udis {
			if _, ok := byKey[udi.Key]; ok {
				continue
			}
			byKey[udi.Key] = udi
			keys = append(keys, udi.Key.String())
		}

		for start := 0; start < len(keys); start += chunkSize {
			end := min(start+chunkSize, len(keys))

			var nodes []models.Node
			err := r.db.WithContext(ctx).
				Select("id", "uniqueId").
				Where("LOWER(nodeObjectType) = ? AND LOWER(uniqueId) IN ?", strings.ToLower(objectType), keys[start:end]).
				Find(&nodes).Error
			if err != nil {
				return nil, fmt.Errorf("failed to resolve entity keys: %w", err)
			}

			for _, node := range nodes {
				key, err := uuid.Parse(strings.TrimSpace(node.UniqueID))
				if err != nil {
					continue
				}
				if udi, ok := byKey[key]; ok {
					out[udi] = node.ID
				}
			}
		}
	}

	return out, nil
}
