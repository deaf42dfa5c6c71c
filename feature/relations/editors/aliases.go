package editors

import (
	"strings"

	"content-relations/core/reconcile"
	"content-relations/feature/relations/models"
)

const (
	RelatedDocumentAlias = models.RelatedDocumentAlias
	RelatedMediaAlias    = models.RelatedMediaAlias
	RelatedMemberAlias   = models.RelatedMemberAlias
)

// AutomaticAliases is the set of aliases the built-in editors manage.
var AutomaticAliases = []string{RelatedDocumentAlias, RelatedMediaAlias, RelatedMemberAlias}

// AliasFor returns the automatic relation type tracking references to an
// entity type, or "" when none does.
func AliasFor(entityType string) string {
	switch strings.ToLower(entityType) {
	case reconcile.EntityTypeDocument:
		return RelatedDocumentAlias
	case reconcile.EntityTypeMedia:
		return RelatedMediaAlias
	case reconcile.EntityTypeMember:
		return RelatedMemberAlias
	default:
		return ""
	}
}

// referenceTo builds a reference tracked under the alias of its entity type.
func referenceTo(udi reconcile.Udi) reconcile.Reference {
	return reconcile.Reference{Target: udi, RelationTypeAlias: AliasFor(udi.EntityType)}
}
