package commands

import (
	"clubsite/backend/internal/config"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"
	"clubsite/backend/internal/standings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(migrateCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the stored standings snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := repository.NewDatabase(ctx, cfg.Database())
		if err != nil {
			return err
		}
		defer db.Close()

		snap, err := db.Standings.Get(ctx, models.StandingsSnapshotID)
		if err != nil {
			return err
		}
		if snap == nil {
			return standings.ErrNotAvailable
		}
		return printSnapshot(cmd.OutOrStdout(), snap)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies pending schema migrations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return repository.Migrate(cfg.Database())
	},
}
