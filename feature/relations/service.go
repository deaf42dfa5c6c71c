package relations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"content-relations/core/metrics"
	"content-relations/core/notification"
	"content-relations/core/reconcile"
	"content-relations/feature/relations/editors"
	"content-relations/feature/relations/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the service runs without a database connection.
var ErrNoDatabase = errors.New("database connection is not available")

// Service reconciles the automatic relations of saved and published entities.
type Service struct {
	db      *gorm.DB
	engine  *reconcile.Engine
	loader  *store.EntityLoader
	queries *store.Queries
	cache   *reconcile.TypeCache
	cfg     reconcile.Config
	logger  *zap.Logger
}

// NewService creates a new relations service.
func NewService(db *gorm.DB, registry *editors.Registry, cfg reconcile.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.WithDefaults()
	return &Service{
		db:      db,
		engine:  reconcile.NewEngine(editors.NewExtractor(logger), registry, logger),
		loader:  store.NewEntityLoader(db, cfg.MaxParameters),
		queries: store.NewQueries(db),
		cache:   reconcile.NewTypeCache(cfg.TypeCacheTTL()),
		cfg:     cfg,
		logger:  logger,
	}
}

// Subscribe registers the service for every (kind, event) notification pair.
func (s *Service) Subscribe(bus *notification.Bus) {
	for _, kind := range notification.Kinds {
		for _, event := range notification.Events {
			bus.Subscribe(kind, event, s.HandleNotification)
		}
	}
}

// HandleNotification is the notification.Handler of the service.
func (s *Service) HandleNotification(ctx context.Context, n notification.Notification) error {
	_, err := s.Reconcile(ctx, n)
	return err
}

// Reconcile loads the notification's entities and reconciles them in one
// transaction. Any failure rolls back the whole notification.
func (s *Service) Reconcile(ctx context.Context, n notification.Notification) ([]reconcile.Result, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	started := time.Now()
	defer metrics.ObserveNotification(string(n.Kind), string(n.Event), started)

	log := s.logger.With(zap.String("kind", string(n.Kind)), zap.String("event", string(n.Event)))

	var results []reconcile.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entities, err := s.loader.WithTx(tx).Load(ctx, string(n.Kind), n.IDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(n.IDs, entities); len(missing) > 0 {
			log.Warn("Entities not found, skipping", zap.Ints("ids", missing))
		}

		scope := reconcile.WithTypeCache(store.NewScope(tx, s.cfg), s.cache)
		results, err = s.engine.ReconcileBatch(ctx, scope, entities)
		return err
	})
	if err != nil {
		metrics.RecordFailure(string(n.Kind), len(n.IDs))
		log.Error("Reconciliation failed, rolled back", zap.Ints("ids", n.IDs), zap.Error(err))
		return nil, fmt.Errorf("failed to reconcile %s: %w", n, err)
	}

	metrics.RecordResults(results)
	log.Info("Reconciled relations", zap.Int("entities", len(results)), zap.Duration("took", time.Since(started)))
	return results, nil
}

// RebuildSummary reports a full rebuild of one kind.
type RebuildSummary struct {
	Kind     string `json:"kind"`
	Entities int    `json:"entities"`
	Batches  int    `json:"batches"`
	Inserted int    `json:"inserted"`
	Deleted  int    `json:"deleted"`
}

// Rebuild reconciles every entity of the kind, batchSize entities per
// transaction. A failing batch stops the rebuild; earlier batches stay committed.
func (s *Service) Rebuild(ctx context.Context, kind notification.Kind, batchSize int) (*RebuildSummary, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	if batchSize <= 0 {
		batchSize = s.cfg.PageSize
	}

	summary := &RebuildSummary{Kind: string(kind)}
	lastID := 0
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ids, err := s.loader.NextIDs(ctx, string(kind), lastID, batchSize)
		if err != nil {
			return summary, err
		}
		if len(ids) == 0 {
			return summary, nil
		}

		results, err := s.Reconcile(ctx, notification.Notification{Kind: kind, Event: notification.EventSaved, IDs: ids})
		if err != nil {
			return summary, fmt.Errorf("rebuild stopped after id %d: %w", lastID, err)
		}

		summary.Batches++
		summary.Entities += len(results)
		for _, r := range results {
			summary.Inserted += r.Inserted
			summary.Deleted += r.Deleted
		}
		lastID = ids[len(ids)-1]
	}
}

// GetRelations returns the relations of a parent, optionally filtered by type alias.
func (s *Service) GetRelations(ctx context.Context, parentID int, aliases []string) ([]store.RelationView, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return s.queries.ListByParent(ctx, parentID, aliases)
}

// InvalidateTypeCache drops cached relation type ids, e.g. after seeding.
func (s *Service) InvalidateTypeCache() {
	s.cache.Invalidate()
}

func missingIDs(requested []int, entities []reconcile.Entity) []int {
	found := make(map[int]struct{}, len(entities))
	for _, e := range entities {
		found[e.ID] = struct{}{}
	}
	var missing []int
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
