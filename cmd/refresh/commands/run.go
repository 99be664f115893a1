package commands

import (
	"fmt"
	"time"

	"clubsite/backend/internal/config"
	"clubsite/backend/internal/repository"
	"clubsite/backend/internal/standings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runDryRun  *bool
	runMigrate *bool
)

func init() {
	runDryRun = runCmd.Flags().Bool("dry-run", false, "Parse into memory and print the table without touching the database.")
	runMigrate = runCmd.Flags().Bool("migrate", false, "Apply pending schema migrations before refreshing.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--dry-run] [--migrate]",
	Short: "Fetches, parses and stores the standings table once.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadRunConfig(*runDryRun)
		if err != nil {
			return err
		}

		var store standings.Store = standings.NewMemoryStore()
		if !*runDryRun {
			dbConfig := cfg.Database()
			if *runMigrate {
				if err := repository.Migrate(dbConfig); err != nil {
					return err
				}
			}

			db, err := repository.NewDatabase(ctx, dbConfig)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Health(ctx); err != nil {
				return err
			}
			store = db.Standings
		}

		start := time.Now()
		snap, err := newRefresher(cfg, store).Run(ctx)
		if err != nil {
			return fmt.Errorf("standings refresh failed: %w", err)
		}

		log.Info().
			Int("teams", len(snap.Teams)).
			Bool("dry_run", *runDryRun).
			Dur("duration", time.Since(start)).
			Msg("Standings refresh complete")

		return printSnapshot(cmd.OutOrStdout(), snap)
	},
}

// loadRunConfig skips the database settings for a dry run
func loadRunConfig(dryRun bool) (*config.Config, error) {
	if dryRun {
		return config.LoadPipeline()
	}
	return config.Load()
}
