package commands

import (
	"fmt"
	"io"

	"clubsite/backend/internal/config"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seedSettingsCmd)
}

var seedSettingsCmd = &cobra.Command{
	Use:   "seed-settings",
	Short: "Writes the club's default stadium and contact details to site settings.",
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

		s, err := db.Settings.Update(ctx, models.ClubSettingsDefaults())
		if err != nil {
			return err
		}

		log.Info().Msg("Site settings seeded")
		return printSettings(cmd.OutOrStdout(), s)
	},
}

func printSettings(w io.Writer, s *models.Settings) error {
	value := func(p *string) string {
		if p == nil {
			return "-"
		}
		return *p
	}

	_, err := fmt.Fprintf(w, "Stadium: %s\nPhone:   %s\nEmail:   %s\nAddress: %s\n",
		value(s.StadiumName), value(s.ContactPhone), value(s.ContactEmail), value(s.ContactAddress))
	return err
}
