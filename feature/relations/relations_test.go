package relations

import (
	"context"
	"testing"

	"content-relations/core/database"
	"content-relations/core/reconcile"
	"content-relations/feature/relations/models"
	"content-relations/feature/relations/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is a seeded in-memory database with a page linking an image.
type fixture struct {
	db    *gorm.DB
	page  models.Node
	image models.Node
	other models.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), db))

	f := &fixture{db: db}
	f.page = f.node(t, reconcile.EntityTypeDocument, "page")
	f.image = f.node(t, reconcile.EntityTypeMedia, "image")
	f.other = f.node(t, reconcile.EntityTypeDocument, "other")

	f.property(t, f.page.ID, "body", "Umbraco.RichText", `<p><img data-udi="`+f.udi(f.image, reconcile.EntityTypeMedia)+`"></p>`)
	f.property(t, f.page.ID, "next", "Umbraco.ContentPicker", f.udi(f.other, reconcile.EntityTypeDocument))
	return f
}

func (f *fixture) node(t *testing.T, kind, name string) models.Node {
	t.Helper()
	objectType, _ := models.ObjectTypeFor(kind)
	n := models.Node{UniqueID: uuid.NewString(), NodeObjectType: objectType, Text: name}
	require.NoError(t, f.db.Create(&n).Error)
	return n
}

func (f *fixture) property(t *testing.T, nodeID int, alias, editor, value string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.PropertyData{NodeID: nodeID, PropertyAlias: alias, EditorAlias: editor, TextValue: value}).Error)
}

func (f *fixture) udi(n models.Node, kind string) string {
	return reconcile.NewUdi(kind, uuid.MustParse(n.UniqueID)).String()
}

func (f *fixture) relationCount(t *testing.T, parentID int) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Relation{}).Where("parentId = ?", parentID).Count(&count).Error)
	return count
}
