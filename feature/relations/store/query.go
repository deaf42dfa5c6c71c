package store

import (
	"context"
	"fmt"
	"time"

	"content-relations/feature/relations/models"

	"gorm.io/gorm"
)

// RelationView is a relation joined with its type alias and child node.
type RelationView struct {
	ID                int       `gorm:"column:id" json:"id"`
	ParentID          int       `gorm:"column:parent_id" json:"parent_id"`
	ChildID           int       `gorm:"column:child_id" json:"child_id"`
	ChildKey          string    `gorm:"column:child_key" json:"child_key"`
	ChildName         string    `gorm:"column:child_name" json:"child_name"`
	RelationTypeAlias string    `gorm:"column:relation_type_alias" json:"relation_type"`
	CreateDate        time.Time `gorm:"column:create_date" json:"create_date"`
	Comment           string    `gorm:"column:comment" json:"comment,omitempty"`
}

// Queries serves read models over the relation tables.
type Queries struct {
	db *gorm.DB
}

// NewQueries creates the relation read queries.
func NewQueries(db *gorm.DB) *Queries {
	return &Queries{db: db}
}

// ListByParent returns the relations of a parent, optionally restricted to
// the given relation type aliases, ordered by id.
func (q *Queries) ListByParent(ctx context.Context, parentID int, aliases []string) ([]RelationView, error) {
	views := make([]RelationView, 0)
	tx := q.db.WithContext(ctx).
		Table(models.Relation{}.TableName()+" AS r").
		Select("r.id AS id, r.parentId AS parent_id, r.childId AS child_id, "+
			"COALESCE(n.uniqueId, '') AS child_key, COALESCE(n.text, '') AS child_name, "+
			"t.alias AS relation_type_alias, r.datetime AS create_date, COALESCE(r.comment, '') AS comment").
		Joins("JOIN "+models.RelationType{}.TableName()+" t ON t.id = r.relType").
		Joins("LEFT JOIN "+models.Node{}.TableName()+" n ON n.id = r.childId").
		Where("r.parentId = ?", parentID)
	if len(aliases) > 0 {
		tx = tx.Where("t.alias IN ?", aliases)
	}
	if err := tx.Order("r.id").Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to list relations of parent %d: %w", parentID, err)
	}
	return views, nil
}

// ListByParents returns the relations of every given parent, keyed by parent id.
func (q *Queries) ListByParents(ctx context.Context, parentIDs []int) (map[int][]RelationView, error) {
	out := make(map[int][]RelationView, len(parentIDs))
	for _, parentID := range parentIDs {
		views, err := q.ListByParent(ctx, parentID, nil)
		if err != nil {
			return nil, err
		}
		out[parentID] = views
	}
	return out, nil
}

func (q *Queries) orphans(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx).
		Table(models.Relation{}.TableName() + " AS r").
		Joins("LEFT JOIN " + models.Node{}.TableName() + " p ON p.id = r.parentId").
		Joins("LEFT JOIN " + models.Node{}.TableName() + " c ON c.id = r.childId").
		Where("p.id IS NULL OR c.id IS NULL")
}

// OrphanedRelationIDs returns the ids of relations whose parent or child node
// no longer exists.
func (q *Queries) OrphanedRelationIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := q.orphans(ctx).Order("r.id").Pluck("r.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to find orphaned relations: %w", err)
	}
	return ids, nil
}

// DeleteRelations removes relations by id.
func (q *Queries) DeleteRelations(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := q.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Relation{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete relations: %w", res.Error)
	}
	return res.RowsAffected, nil
}
