package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// Plan is the set of mutations that converges a parent's persisted relations
// onto its desired relations.
type Plan struct {
	// ParentID is the parent the plan applies to.
	ParentID int

	// ToInsert holds desired relations that are not persisted yet.
	ToInsert []Relation

	// ToDelete holds persisted relations that are no longer desired.
	ToDelete []Relation

	// Unchanged counts relations that are both desired and persisted.
	Unchanged int
}

// IsEmpty reports whether the plan performs no mutation.
func (p *Plan) IsEmpty() bool {
	return len(p.ToInsert) == 0 && len(p.ToDelete) == 0
}

// BuildPlan diffs the desired keys against the existing relations of a parent.
// Existing relations that are desired are left out of the plan entirely.
func BuildPlan(parentID int, desired map[RelationKey]struct{}, existing []Relation) *Plan {
	plan := &Plan{ParentID: parentID}

	persisted := make(map[RelationKey]struct{}, len(existing))
	for _, rel := range existing {
		key := rel.Key()
		if _, dup := persisted[key]; dup {
			// A duplicate row for the same key is stale by definition.
			plan.ToDelete = append(plan.ToDelete, rel)
			continue
		}
		persisted[key] = struct{}{}

		if _, ok := desired[key]; ok {
			plan.Unchanged++
			continue
		}
		plan.ToDelete = append(plan.ToDelete, rel)
	}

	for key := range desired {
		if _, ok := persisted[key]; ok {
			continue
		}
		plan.ToInsert = append(plan.ToInsert, Relation{
			ParentID:       parentID,
			ChildID:        key.ChildID,
			RelationTypeID: key.RelationTypeID,
		})
	}

	// Sort inserts for stable logs; callers must not rely on the order.
	sort.Slice(plan.ToInsert, func(i, j int) bool {
		a, b := plan.ToInsert[i], plan.ToInsert[j]
		if a.RelationTypeID != b.RelationTypeID {
			return a.RelationTypeID < b.RelationTypeID
		}
		return a.ChildID < b.ChildID
	})

	return plan
}

// ApplyPlan executes the plan against the store: one bulk insert for the new
// relations, then one delete per stale relation.
// Returns the number of relations written or removed before any error.
func ApplyPlan(ctx context.Context, store RelationStore, plan *Plan) (executed int, err error) {
	if plan == nil || plan.IsEmpty() {
		return 0, nil
	}

	if len(plan.ToInsert) > 0 {
		if err := store.BulkInsert(ctx, plan.ToInsert); err != nil {
			return executed, fmt.Errorf("failed to insert relations for parent %d: %w", plan.ParentID, err)
		}
		executed += len(plan.ToInsert)
	}

	for _, rel := range plan.ToDelete {
		if err := store.Delete(ctx, rel); err != nil {
			return executed, fmt.Errorf("failed to delete relation %d->%d (type %d): %w",
				rel.ParentID, rel.ChildID, rel.RelationTypeID, err)
		}
		executed++
	}

	return executed, nil
}
