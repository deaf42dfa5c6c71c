package models

import (
	"strings"
	"time"

	"content-relations/core/reconcile"
)

// Automatic relation type aliases managed by the built-in property editors.
const (
	RelatedDocumentAlias = "umbDocument"
	RelatedMediaAlias    = "umbMedia"
	RelatedMemberAlias   = "umbMember"
)

// Node object types identify what kind of entity a node row holds.
const (
	ObjectTypeDocument = "c66ba18e-eaf3-4cff-8a22-41b16d66a972"
	ObjectTypeMedia    = "b796f64c-1f99-4ffb-b886-4bf4bc011a9c"
	ObjectTypeMember   = "39eb0f98-b348-42a1-8662-e7eb18487560"
)

// ObjectTypeFor returns the node object type backing an entity type.
// ok is false for entity types that are not stored as nodes.
func ObjectTypeFor(entityType string) (objectType string, ok bool) {
	switch strings.ToLower(entityType) {
	case reconcile.EntityTypeDocument:
		return ObjectTypeDocument, true
	case reconcile.EntityTypeMedia:
		return ObjectTypeMedia, true
	case reconcile.EntityTypeMember:
		return ObjectTypeMember, true
	default:
		return "", false
	}
}

// Node represents the 'umbracoNode' table.
type Node struct {
	ID             int    `gorm:"column:id;primaryKey;autoIncrement"`
	UniqueID       string `gorm:"column:uniqueId;type:varchar(36);uniqueIndex"`
	NodeObjectType string `gorm:"column:nodeObjectType;type:varchar(36);index"`
	Text           string `gorm:"column:text;type:varchar(255)"`
	Trashed        bool   `gorm:"column:trashed"`
}

// TableName overrides the table name for nodes.
func (Node) TableName() string {
	return "umbracoNode"
}

// RelationType represents the 'umbracoRelationType' table.
type RelationType struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement"`
	TypeUniqueID string `gorm:"column:typeUniqueId;type:varchar(36)"`
	Alias        string `gorm:"column:alias;type:varchar(100);uniqueIndex"`
	Name         string `gorm:"column:name;type:varchar(255)"`
	IsDependency bool   `gorm:"column:isDependency"`
}

// TableName overrides the table name for relation types.
func (RelationType) TableName() string {
	return "umbracoRelationType"
}

// Relation represents the 'umbracoRelation' table.
type Relation struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	ParentID   int       `gorm:"column:parentId;uniqueIndex:IX_umbracoRelation_parentChildType,priority:1"`
	ChildID    int       `gorm:"column:childId;uniqueIndex:IX_umbracoRelation_parentChildType,priority:2"`
	RelType    int       `gorm:"column:relType;uniqueIndex:IX_umbracoRelation_parentChildType,priority:3"`
	CreateDate time.Time `gorm:"column:datetime"`
	Comment    string    `gorm:"column:comment;type:varchar(1000)"`
}

// TableName overrides the table name for relations.
func (Relation) TableName() string {
	return "umbracoRelation"
}

// ToDomain converts the row to the engine's relation type.
func (r Relation) ToDomain() reconcile.Relation {
	return reconcile.Relation{
		ID:             r.ID,
		ParentID:       r.ParentID,
		ChildID:        r.ChildID,
		RelationTypeID: r.RelType,
		CreateDate:     r.CreateDate,
		Comment:        r.Comment,
	}
}

// RelationFromDomain converts an engine relation to a row.
func RelationFromDomain(r reconcile.Relation) Relation {
	return Relation{
		ID:         r.ID,
		ParentID:   r.ParentID,
		ChildID:    r.ChildID,
		RelType:    r.RelationTypeID,
		CreateDate: r.CreateDate,
		Comment:    r.Comment,
	}
}

// PropertyData represents the 'umbracoPropertyData' table: one row per
// property value of a node.
type PropertyData struct {
	ID            int    `gorm:"column:id;primaryKey;autoIncrement"`
	NodeID        int    `gorm:"column:nodeId;index"`
	PropertyAlias string `gorm:"column:propertyAlias;type:varchar(255)"`
	EditorAlias   string `gorm:"column:editorAlias;type:varchar(255)"`
	TextValue     string `gorm:"column:textValue;type:text"`
}

// TableName overrides the table name for property data.
func (PropertyData) TableName() string {
	return "umbracoPropertyData"
}

// All returns every model, in migration order.
func All() []any {
	return []any{&Node{}, &RelationType{}, &Relation{}, &PropertyData{}}
}

// AutomaticRelationTypes returns the relation types seeded on startup.
func AutomaticRelationTypes() []RelationType {
	return []RelationType{
		{TypeUniqueID: "4954ce93-3bf9-3d1e-9cd2-21bf9f9c2abf", Alias: RelatedDocumentAlias, Name: "Related Document", IsDependency: true},
		{TypeUniqueID: "0c7cf47a-eb1d-3fb6-a17e-8fd0ec74e9b2", Alias: RelatedMediaAlias, Name: "Related Media", IsDependency: true},
		{TypeUniqueID: "9a2e5f40-a1a5-3a72-8c53-e9d9e8cbc0c6", Alias: RelatedMemberAlias, Name: "Related Member", IsDependency: true},
	}
}
