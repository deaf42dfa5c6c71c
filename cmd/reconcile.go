package cmd

import (
	"context"
	"fmt"

	"content-relations/core/notification"
	"content-relations/core/reconcile"
	"content-relations/core/utils"
	"content-relations/feature/relations"
	"content-relations/feature/relations/editors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	reconcileKind      string
	reconcileEvent     string
	reconcileIDs       string
	reconcileRebuild   bool
	reconcileBatchSize int
)

// reconcileCmd reconciles the automatic relations of entities.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile automatic relations of content entities",
	Long: `Reconcile the automatic relations of entities with the references found in
their property values.

Examples:
  # Reconcile two documents as if they were saved
  reconcile --kind document --ids 1061,1062

  # Reconcile media as if they were published
  reconcile --kind media --event published --ids 1100

  # Rebuild the relations of every member
  reconcile --kind member --rebuild --batch-size 200`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileKind, "kind", string(notification.KindDocument), "Entity kind (document, media, member)")
	reconcileCmd.Flags().StringVar(&reconcileEvent, "event", string(notification.EventSaved), "Event to simulate (saved, published)")
	reconcileCmd.Flags().StringVar(&reconcileIDs, "ids", "", "Comma separated entity ids")
	reconcileCmd.Flags().BoolVar(&reconcileRebuild, "rebuild", false, "Reconcile every entity of the kind")
	reconcileCmd.Flags().IntVar(&reconcileBatchSize, "batch-size", 100, "Entities per transaction when rebuilding")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	db, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	svc := relations.NewService(db, editors.Default(), cfg.Relations, l)
	kind := notification.Kind(reconcileKind)

	if reconcileRebuild {
		if reconcileBatchSize <= 0 {
			return fmt.Errorf("batch size must be positive, got %d", reconcileBatchSize)
		}
		l.Info("Rebuilding relations", zap.String("kind", reconcileKind), zap.Int("batch_size", reconcileBatchSize))
		summary, err := svc.Rebuild(ctx, kind, reconcileBatchSize)
		if err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
		l.Info("Rebuild report",
			zap.String("kind", summary.Kind),
			zap.Int("entities", summary.Entities),
			zap.Int("batches", summary.Batches),
			zap.Int("inserted", summary.Inserted),
			zap.Int("deleted", summary.Deleted),
		)
		return nil
	}

	ids, err := utils.ParseIDs(reconcileIDs)
	if err != nil {
		return fmt.Errorf("invalid --ids: %w", err)
	}

	n := notification.Notification{Kind: kind, Event: notification.Event(reconcileEvent), IDs: ids}
	if err := validator.New().Struct(n); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	results, err := svc.Reconcile(ctx, n)
	if err != nil {
		return err
	}
	printReconcileReport(l, results)
	return nil
}

// printReconcileReport logs the outcome of each reconciled entity.
func printReconcileReport(l *zap.Logger, results []reconcile.Result) {
	var inserted, deleted int
	for _, r := range results {
		inserted += r.Inserted
		deleted += r.Deleted
		l.Info("Reconciled entity",
			zap.Int("id", r.ParentID),
			zap.String("kind", r.Kind),
			zap.Bool("cleared", r.Cleared),
			zap.Int("inserted", r.Inserted),
			zap.Int("deleted", r.Deleted),
		)
	}
	l.Info("Reconciliation report",
		zap.Int("entities", len(results)),
		zap.Int("inserted", inserted),
		zap.Int("deleted", deleted),
	)
}
