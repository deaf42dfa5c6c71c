package relations

import (
	"content-relations/core/reconcile"
	"content-relations/core/storage"
	"content-relations/feature/relations/editors"
	"content-relations/feature/relations/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	exporter *Exporter
	handler  *Handler
	enabled  bool
}

// NewFeature creates the relations feature.
func NewFeature(db *gorm.DB, registry *editors.Registry, client storage.Client, storageCfg storage.Config, cfg reconcile.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, registry, cfg, logger)

	var queries *store.Queries
	if db != nil {
		queries = store.NewQueries(db)
	}
	exp := NewExporter(client, storageCfg.Bucket, storageCfg.Region, queries, logger)

	return &Feature{
		service:  svc,
		exporter: exp,
		handler:  NewHandler(svc, exp),
		enabled:  db != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "relations"
}

// IsEnabled reports whether a database is available.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service, used to subscribe it to notifications.
func (f *Feature) Service() *Service {
	return f.service
}

// Exporter returns the feature's exporter.
func (f *Feature) Exporter() *Exporter {
	return f.exporter
}
