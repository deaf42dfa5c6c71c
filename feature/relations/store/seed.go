package store

import (
	"context"
	"fmt"

	"content-relations/feature/relations/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the relation tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate relation tables: %w", err)
	}
	return nil
}

// SeedRelationTypes creates the automatic relation types that are missing.
// Existing rows are left untouched. It returns the number of types created.
func SeedRelationTypes(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rt := range models.AutomaticRelationTypes() {
			var count int64
			if err := tx.Model(&models.RelationType{}).Where("alias = ?", rt.Alias).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to read relation type %s: %w", rt.Alias, err)
			}
			if count > 0 {
				continue
			}
			row := rt
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed relation type %s: %w", rt.Alias, err)
			}
			created++
		}
		return nil
	})
	return created, err
}

// Seed migrates the schema and seeds the automatic relation types.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	_, err := SeedRelationTypes(ctx, db)
	return err
}
