package reconcile

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Engine keeps the automatic relations of an entity consistent with the
// references embedded in its property values.
// The engine never opens a transaction: every store call goes through the
// caller's Scope.
type Engine struct {
	extractor Extractor
	editors   EditorRegistry
	logger    *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(extractor Extractor, editors EditorRegistry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		extractor: extractor,
		editors:   editors,
		logger:    logger,
	}
}

// Reconcile synchronizes the automatic relations of one entity.
// Classification problems with individual references are logged and skipped;
// only extractor, registry, resolver or store failures are returned.
func (e *Engine) Reconcile(ctx context.Context, scope Scope, entity Entity) (*Result, error) {
	log := e.logger.With(zap.Int("parent_id", entity.ID), zap.String("kind", entity.Kind))
	result := &Result{
		ParentID: entity.ID,
		Kind:     entity.Kind,
		Skipped:  make(map[SkipReason]int),
	}

	references, automatic := e.extractor.ExtractReferences(entity.Properties, e.editors)

	typeIDs, err := scope.RelationTypes().ResolveRelationTypeIDs(ctx, automatic.Sorted())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve relation types: %w", err)
	}

	if len(references) == 0 {
		if ids := sortedIDs(typeIDs); len(ids) > 0 {
			if err := scope.Relations().DeleteByParentAndTypes(ctx, entity.ID, ids); err != nil {
				return nil, fmt.Errorf("failed to clear relations of parent %d: %w", entity.ID, err)
			}
		}
		result.Cleared = true
		log.Debug("No references found, cleared automatic relations")
		return result, nil
	}

	targetIDs, err := scope.Entities().ResolveEntityIDs(ctx, references.Targets())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reference targets: %w", err)
	}

	desired := make(map[RelationKey]struct{}, len(references))
	for ref := range references {
		refLog := log.With(zap.String("udi", ref.Target.String()), zap.String("relation_type", ref.RelationTypeAlias))

		if ref.RelationTypeAlias == "" {
			refLog.Debug("Reference has no relation type alias, skipping")
			result.Skipped[SkipNoAlias]++
			continue
		}

		if !automatic.Contains(ref.RelationTypeAlias) {
			refLog.Error("Reference uses a relation type that is not declared as automatic, skipping")
			result.Skipped[SkipNotAutomatic]++
			continue
		}

		typeID, ok := typeIDs[ref.RelationTypeAlias]
		if !ok {
			refLog.Warn("Relation type not found, skipping reference")
			result.Skipped[SkipUnknownType]++
			continue
		}

		childID, ok := targetIDs[ref.Target]
		if !ok {
			refLog.Info("Reference target has no node id, skipping")
			result.Skipped[SkipUnresolvedTarget]++
			continue
		}

		desired[RelationKey{ChildID: childID, RelationTypeID: typeID}] = struct{}{}
	}

	var existing []Relation
	if ids := sortedIDs(typeIDs); len(ids) > 0 {
		existing, err = scope.Relations().GetByParentAndTypes(ctx, entity.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load relations of parent %d: %w", entity.ID, err)
		}
	}

	plan := BuildPlan(entity.ID, desired, existing)
	if _, err := ApplyPlan(ctx, scope.Relations(), plan); err != nil {
		return nil, err
	}

	result.Inserted = len(plan.ToInsert)
	result.Deleted = len(plan.ToDelete)
	result.Unchanged = plan.Unchanged

	log.Debug("Reconciled relations",
		zap.Int("inserted", result.Inserted),
		zap.Int("deleted", result.Deleted),
		zap.Int("unchanged", result.Unchanged),
	)

	return result, nil
}

// ReconcileBatch reconciles the entities one after another within the same
// scope, so the whole batch commits or rolls back together.
// The first failure aborts the batch.
func (e *Engine) ReconcileBatch(ctx context.Context, scope Scope, entities []Entity) ([]Result, error) {
	results := make([]Result, 0, len(entities))
	for _, entity := range entities {
		res, err := e.Reconcile(ctx, scope, entity)
		if err != nil {
			return results, fmt.Errorf("reconcile %s %d: %w", entity.Kind, entity.ID, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// sortedIDs returns the map's values in ascending order.
func sortedIDs(typeIDs map[string]int) []int {
	ids := make([]int, 0, len(typeIDs))
	seen := make(map[int]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
