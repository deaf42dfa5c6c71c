package checks

import (
	"context"
	"testing"

	"content-relations/feature/relations/models"
	"content-relations/feature/relations/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRelations(t *testing.T) (*gorm.DB, []int) {
	t.Helper()
	db := setupSQLite(t)
	require.NoError(t, store.Seed(context.Background(), db))

	nodes := []models.Node{
		{UniqueID: "a0000000-0000-0000-0000-000000000001", NodeObjectType: models.ObjectTypeDocument, Text: "Home"},
		{UniqueID: "a0000000-0000-0000-0000-000000000002", NodeObjectType: models.ObjectTypeMedia, Text: "Logo"},
	}
	require.NoError(t, db.Create(&nodes).Error)

	var media models.RelationType
	require.NoError(t, db.Where("alias = ?", models.RelatedMediaAlias).First(&media).Error)

	rels := []models.Relation{
		{ParentID: nodes[0].ID, ChildID: nodes[1].ID, RelType: media.ID},
		{ParentID: nodes[0].ID, ChildID: 9999, RelType: media.ID},
		{ParentID: 8888, ChildID: nodes[1].ID, RelType: media.ID},
	}
	require.NoError(t, db.Create(&rels).Error)
	return db, []int{rels[1].ID, rels[2].ID}
}

func TestCheckRelations(t *testing.T) {
	ctx := context.Background()
	aliases := []string{models.RelatedMediaAlias, models.RelatedDocumentAlias, models.RelatedMemberAlias}

	t.Run("Nil DB", func(t *testing.T) {
		_, err := CheckRelations(ctx, nil, aliases)
		assert.Error(t, err)
	})

	t.Run("Healthy", func(t *testing.T) {
		db := setupSQLite(t)
		require.NoError(t, store.Seed(ctx, db))

		report, err := CheckRelations(ctx, db, aliases)
		require.NoError(t, err)
		assert.Equal(t, "ok", report.Status)
		assert.Empty(t, report.MissingRelationTypes)
		assert.Zero(t, report.OrphanedRelations)
	})

	t.Run("Detects and fixes", func(t *testing.T) {
		db, orphans := seedRelations(t)
		require.NoError(t, db.Where("alias = ?", models.RelatedMemberAlias).Delete(&models.RelationType{}).Error)

		report, err := CheckRelations(ctx, db, aliases)
		require.NoError(t, err)
		assert.Equal(t, "error", report.Status)
		assert.Equal(t, []string{models.RelatedMemberAlias}, report.MissingRelationTypes)
		assert.Equal(t, 2, report.OrphanedRelations)
		assert.Equal(t, orphans, report.OrphanedIDs)

		require.NoError(t, FixRelations(ctx, db, report))

		after, err := CheckRelations(ctx, db, aliases)
		require.NoError(t, err)
		assert.Equal(t, "ok", after.Status)

		var remaining int64
		require.NoError(t, db.Model(&models.Relation{}).Count(&remaining).Error)
		assert.Equal(t, int64(1), remaining)
	})
}
