package standings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"clubsite/backend/internal/client"
	"clubsite/backend/internal/metrics"
	"clubsite/backend/internal/models"
	"clubsite/backend/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// ErrNoRows is returned when the located table yielded no usable rows
var ErrNoRows = errors.New("standings table has no parseable rows")

// Trigger names what started a refresh
type Trigger string

const (
	TriggerStartup   Trigger = "startup"
	TriggerScheduled Trigger = "scheduled"
	TriggerLazy      Trigger = "lazy"
	TriggerManual    Trigger = "manual"
)

// Fetcher returns the raw standings page
type Fetcher interface {
	Fetch(ctx context.Context) (*client.Page, error)
}

// Refresher runs the fetch, locate, parse and store pipeline
type Refresher struct {
	fetcher    Fetcher
	locator    *scraper.Locator
	parser     *scraper.Parser
	store      Store
	leagueName string
	now        func() time.Time
}

// NewRefresher wires the pipeline stages together
func NewRefresher(fetcher Fetcher, locator *scraper.Locator, parser *scraper.Parser, store Store, leagueName string) *Refresher {
	return &Refresher{
		fetcher:    fetcher,
		locator:    locator,
		parser:     parser,
		store:      store,
		leagueName: leagueName,
		now:        time.Now,
	}
}

// Run executes the pipeline once. Nothing is written unless every step
// succeeded and at least one row was parsed.
func (r *Refresher) Run(ctx context.Context) (*models.StandingsSnapshot, error) {
	page, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings page: %w", err)
	}

	// The Content-Type charset wins, then <meta charset>, then UTF-8 sniffing.
	utf8Body, err := charset.NewReader(bytes.NewReader(page.Body), page.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode standings page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse standings page: %w", err)
	}

	table, err := r.locator.Locate(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to locate standings table: %w", err)
	}

	rows, skipped := r.parser.Parse(table)

	byReason := make(map[string]int)
	for _, e := range skipped {
		byReason[string(e.Reason)]++
		log.Warn().
			Int("row", e.Index).
			Str("reason", string(e.Reason)).
			Int("cells", e.Cells).
			Msg("Skipped standings row")
	}
	metrics.RecordParse(len(rows), byReason)

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	snap := models.NewStandingsSnapshot(r.leagueName, rows, r.now())
	if err := r.store.Upsert(ctx, snap.ID, snap); err != nil {
		return nil, fmt.Errorf("failed to save standings: %w", err)
	}

	return snap.Clone(), nil
}

// Refresh runs the pipeline and reports whether a snapshot was written.
// Failures are logged and counted, never returned.
func (r *Refresher) Refresh(ctx context.Context, trigger Trigger) bool {
	start := time.Now()

	snap, err := r.Run(ctx)
	if err != nil {
		result := refreshResult(err)
		metrics.RecordRefresh(string(trigger), result, time.Since(start))
		metrics.RecordError("refresher", result)

		evt := log.Warn()
		if result == "store_error" {
			evt = log.Error()
		}
		evt.Err(err).
			Str("trigger", string(trigger)).
			Str("result", result).
			Dur("duration", time.Since(start)).
			Msg("Standings refresh failed")
		return false
	}

	metrics.RecordRefresh(string(trigger), "success", time.Since(start))
	log.Info().
		Str("trigger", string(trigger)).
		Str("league", snap.LeagueName).
		Int("teams", len(snap.Teams)).
		Dur("duration", time.Since(start)).
		Msg("Standings updated")
	return true
}

// EnsureSnapshot refreshes once when the store holds no snapshot yet.
// It reports whether a snapshot exists afterwards.
func (r *Refresher) EnsureSnapshot(ctx context.Context) bool {
	snap, err := r.store.Get(ctx, models.StandingsSnapshotID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing standings")
		return false
	}

	if snap != nil {
		log.Info().
			Time("last_updated", snap.LastUpdated).
			Int("teams", len(snap.Teams)).
			Msg("Standings snapshot present, skipping initial refresh")
		return true
	}

	log.Info().Msg("No standings snapshot found, running initial refresh")
	return r.Refresh(ctx, TriggerStartup)
}

func refreshResult(err error) string {
	var fe *client.FetchError
	switch {
	case errors.As(err, &fe):
		return "fetch_" + fe.Kind.String()
	case errors.Is(err, scraper.ErrTableNotFound):
		return "table_not_found"
	case errors.Is(err, ErrNoRows):
		return "no_rows"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "store_error"
	}
}
