package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"clubsite/backend/internal/client"
	"clubsite/backend/internal/config"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/scraper"
	"clubsite/backend/internal/standings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "refresh",
	Short:        "refresh fetches the league standings page and stores the parsed table.",
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRefresher(cfg *config.Config, store standings.Store) *standings.Refresher {
	fetcher := client.NewFetcher(client.FetcherConfig{
		URL:          cfg.StandingsURL,
		UserAgent:    cfg.StandingsUserAgent,
		Timeout:      cfg.StandingsFetchTimeout,
		MaxBodyBytes: cfg.StandingsMaxBodyBytes,
	})
	locator := scraper.NewDefaultLocator(cfg.StandingsMarkers(), cfg.StandingsLookback, cfg.StandingsMinColumns)
	return standings.NewRefresher(fetcher, locator, scraper.NewParser(), store, cfg.StandingsLeagueName)
}

// printSnapshot renders the table the way it appears on the site
func printSnapshot(w io.Writer, snap *models.StandingsSnapshot) error {
	fmt.Fprintf(w, "%s (updated %s)\n\n", snap.LeagueName, snap.LastUpdated.Format("2006-01-02 15:04 MST"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTeam\tG\tW\tD\tL\tGF\tGA\tGD\tPts\t")
	for _, row := range snap.Teams {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
			row.Position, row.Team, row.Games, row.Wins, row.Draws, row.Losses,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points,
		)
	}
	return tw.Flush()
}
