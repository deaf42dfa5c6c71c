package checks

import (
	"context"
	"fmt"
	"sort"

	"content-relations/feature/relations/store"

	"gorm.io/gorm"
)

// RelationsReport describes the health of the relation data.
type RelationsReport struct {
	// MissingRelationTypes lists automatic aliases with no registry row.
	// References tracked under them are skipped until the type exists.
	MissingRelationTypes []string `json:"missing_relation_types"`
	// OrphanedRelations counts relations whose parent or child node is gone.
	OrphanedRelations int `json:"orphaned_relations"`
	// OrphanedIDs holds the ids of the orphaned relations.
	OrphanedIDs []int `json:"orphaned_ids"`
	// Status is "ok" or "error".
	Status string `json:"status"`
}

// CheckRelations verifies that every automatic alias is registered and
// looks for orphaned relations.
func CheckRelations(ctx context.Context, db *gorm.DB, automaticAliases []string) (*RelationsReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &RelationsReport{MissingRelationTypes: []string{}, OrphanedIDs: []int{}, Status: "ok"}

	ids, err := store.NewTypeRegistry(db).ResolveRelationTypeIDs(ctx, automaticAliases)
	if err != nil {
		return nil, err
	}
	for _, alias := range automaticAliases {
		if _, ok := ids[alias]; !ok {
			report.MissingRelationTypes = append(report.MissingRelationTypes, alias)
		}
	}
	sort.Strings(report.MissingRelationTypes)

	orphans, err := store.NewQueries(db).OrphanedRelationIDs(ctx)
	if err != nil {
		return nil, err
	}
	if orphans != nil {
		report.OrphanedIDs = orphans
	}
	report.OrphanedRelations = len(orphans)

	if len(report.MissingRelationTypes) > 0 || report.OrphanedRelations > 0 {
		report.Status = "error"
	}
	return report, nil
}

// FixRelations seeds the missing relation types and deletes orphaned relations
// in one transaction.
func FixRelations(ctx context.Context, db *gorm.DB, report *RelationsReport) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(report.MissingRelationTypes) > 0 {
			if _, err := store.SeedRelationTypes(ctx, tx); err != nil {
				return err
			}
		}
		if _, err := store.NewQueries(tx).DeleteRelations(ctx, report.OrphanedIDs); err != nil {
			return err
		}
		return nil
	})
}
