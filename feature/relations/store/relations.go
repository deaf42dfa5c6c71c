package store

import (
	"context"
	"fmt"
	"time"

	"content-relations/core/reconcile"
	"content-relations/feature/relations/models"

	"gorm.io/gorm"
)

// RelationStore implements reconcile.RelationStore on a gorm handle.
// Bind it to a transaction to make its writes part of the caller's unit of work.
type RelationStore struct {
	db        *gorm.DB
	pageSize  int
	batchSize int
	now       func() time.Time
}

// NewRelationStore creates a relation store. Non-positive sizes fall back to the defaults.
func NewRelationStore(db *gorm.DB, pageSize, batchSize int) *RelationStore {
	if pageSize <= 0 {
		pageSize = reconcile.DefaultPageSize
	}
	if batchSize <= 0 {
		batchSize = reconcile.DefaultInsertBatchSize
	}
	return &RelationStore{db: db, pageSize: pageSize, batchSize: batchSize, now: time.Now}
}

// DeleteByParentAndTypes removes every relation of the parent with one of the types.
func (s *RelationStore) DeleteByParentAndTypes(ctx context.Context, parentID int, relationTypeIDs []int) error {
	if len(relationTypeIDs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("parentId = ? AND relType IN ?", parentID, relationTypeIDs).
		Delete(&models.Relation{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete relations of parent %d: %w", parentID, err)
	}
	return nil
}

// GetByParentAndTypes returns every relation of the parent with one of the
// types, reading pages of pageSize rows ordered by id.
func (s *RelationStore) GetByParentAndTypes(ctx context.Context, parentID int, relationTypeIDs []int) ([]reconcile.Relation, error) {
	if len(relationTypeIDs) == 0 {
		return nil, nil
	}

	var out []reconcile.Relation
	lastID := 0
	for {
		var page []models.Relation
		err := s.db.WithContext(ctx).
			Where("parentId = ? AND relType IN ? AND id > ?", parentID, relationTypeIDs, lastID).
			Order("id").
			Limit(s.pageSize).
			Find(&page).Error
		if err != nil {
			return nil, fmt.Errorf("failed to read relations of parent %d: %w", parentID, err)
		}

		for _, row := range page {
			out = append(out, row.ToDomain())
		}

		if len(page) < s.pageSize {
			return out, nil
		}
		lastID = page[len(page)-1].ID
	}
}

// BulkInsert persists the relations, stamping the creation date when unset.
func (s *RelationStore) BulkInsert(ctx context.Context, relations []reconcile.Relation) error {
	if len(relations) == 0 {
		return nil
	}

	now := s.now()
	rows := make([]models.Relation, 0, len(relations))
	for _, rel := range relations {
		row := models.RelationFromDomain(rel)
		row.ID = 0
		if row.CreateDate.IsZero() {
			row.CreateDate = now
		}
		rows = append(rows, row)
	}

	if err := s.db.WithContext(ctx).CreateInBatches(&rows, s.batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d relations: %w", len(rows), err)
	}
	return nil
}

// Delete removes a single relation, by row id when known and by its
// (parent, child, type) key otherwise.
func (s *RelationStore) Delete(ctx context.Context, relation reconcile.Relation) error {
	q := s.db.WithContext(ctx)
	if relation.ID > 0 {
		q = q.Where("id = ?", relation.ID)
	} else {
		q = q.Where("parentId = ? AND childId = ? AND relType = ?", relation.ParentID, relation.ChildID, relation.RelationTypeID)
	}
	if err := q.Delete(&models.Relation{}).Error; err != nil {
		return fmt.Errorf("failed to delete relation %d: %w", relation.ID, err)
	}
	return nil
}
