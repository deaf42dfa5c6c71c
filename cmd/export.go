package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"content-relations/core/storage"
	"content-relations/core/utils"
	"content-relations/feature/relations"
	"content-relations/feature/relations/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the export command
	exportIDs       string
	exportPruneKeep int
	yesConfirm      bool
)

// exportCmd writes relation snapshots to object storage.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export relations of parent nodes to object storage",
	Long: `Writes a JSON snapshot of the relations of the given parents to the
exports/ folder of the storage bucket. Optionally prunes older snapshots.

Examples:
  # Export the relations of two parents
  export --ids 1061,1062

  # Export, then keep only the 10 newest snapshots
  export --ids 1061 --prune-keep 10 --yes`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportIDs, "ids", "", "Comma separated parent ids")
	exportCmd.Flags().IntVar(&exportPruneKeep, "prune-keep", -1, "Keep only the N newest exports (negative disables pruning)")
	exportCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ids, err := utils.ParseIDs(exportIDs)
	if err != nil {
		return fmt.Errorf("invalid --ids: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("--ids is required")
	}

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	db, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	exporter := relations.NewExporter(client, cfg.Storage.Bucket, cfg.Storage.Region, store.NewQueries(db), l)
	key, err := exporter.Export(ctx, ids)
	if err != nil {
		return err
	}
	l.Info("Export written", zap.String("bucket", cfg.Storage.Bucket), zap.String("key", key))

	if exportPruneKeep < 0 {
		return nil
	}
	if !confirmDestructiveAction() {
		l.Warn("Prune cancelled by user. No exports were removed.")
		return nil
	}

	removed, err := exporter.Prune(ctx, exportPruneKeep)
	if err != nil {
		return fmt.Errorf("failed to prune exports: %w", err)
	}
	l.Info("Pruned exports", zap.Int("removed", len(removed)), zap.Int("kept", exportPruneKeep))
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
