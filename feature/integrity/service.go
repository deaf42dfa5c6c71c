package integrity

import (
	"context"
	"fmt"

	"content-relations/core/storage"
	"content-relations/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	db      *gorm.DB
	aliases []string
}

// NewService creates a new integrity service. aliases are the automatic
// relation type aliases the relation types check expects in the registry.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, aliases []string) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		db:      db,
		aliases: aliases,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckServer validates the relation tables against their models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	return checks.CheckServerIntegrity(s.db)
}

// CheckRelations looks for unregistered relation types and orphaned relations.
func (s *Service) CheckRelations(ctx context.Context) (*checks.RelationsReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	return checks.CheckRelations(ctx, s.db, s.aliases)
}

// FixRelations repairs what CheckRelations reported.
func (s *Service) FixRelations(ctx context.Context, report *checks.RelationsReport) error {
	if s.db == nil {
		return fmt.Errorf("database connection not available")
	}
	if err := checks.FixRelations(ctx, s.db, report); err != nil {
		return err
	}
	s.logger.Info("Repaired relation data",
		zap.Strings("seeded_types", report.MissingRelationTypes),
		zap.Int("deleted_orphans", report.OrphanedRelations))
	return nil
}
