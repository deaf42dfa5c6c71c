package cmd

import (
	"context"
	"fmt"

	"content-relations/core/database"
	"content-relations/core/storage"
	"content-relations/feature/integrity"
	"content-relations/feature/relations/editors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on relation data and storage",
	Long:  `Checks the export bucket structure, the relation schema and the relation data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), integrityChecks{structure: true, server: true, relations: true})
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the export folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{structure: true, fix: fixFlag})
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the relation tables against their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{server: true})
	},
}

// relationsIntegrityCmd represents the integrity relations command
var relationsIntegrityCmd = &cobra.Command{
	Use:   "relations",
	Short: "Check and fix relation types and orphaned relations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityChecks{relations: true, fix: fixFlag})
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, serverCmd, relationsIntegrityCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
	relationsIntegrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Seed missing relation types and delete orphaned relations")
	relationsIntegrityCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
}

type integrityChecks struct {
	structure bool
	server    bool
	relations bool
	fix       bool
}

func runIntegrityChecks(ctx context.Context, run integrityChecks) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	// The schema check must see the tables as they are, so no migration here.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(store, cfg.Storage.Bucket, logg, db, editors.AutomaticAliases)

	if run.structure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if run.fix {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if run.server {
		logg.Info("Checking relation schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			logg.Error("Server schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Relation schema matches expected definition.", zap.String("dialect", report.Dialect))
		} else {
			logg.Warn("Relation schema mismatches found", zap.String("dialect", report.Dialect))
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if run.relations {
		logg.Info("Checking relation data...")
		report, err := svc.CheckRelations(ctx)
		if err != nil {
			return fmt.Errorf("relations check failed: %w", err)
		}

		if report.Status == "ok" {
			logg.Info("Relation data is consistent.")
			return nil
		}

		logg.Warn("Relation data issues found",
			zap.Strings("missing_relation_types", report.MissingRelationTypes),
			zap.Int("orphaned_relations", report.OrphanedRelations))

		if !run.fix {
			logg.Info("Run 'integrity relations --fix' to repair them.")
			return nil
		}
		if !confirmDestructiveAction() {
			logg.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		if err := svc.FixRelations(ctx, report); err != nil {
			return fmt.Errorf("failed to fix relations: %w", err)
		}
	}

	return nil
}
