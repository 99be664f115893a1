package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubsite/backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// StandingsRepository stores the standings snapshot as a single row.
// It implements standings.Store.
type StandingsRepository struct {
	db *Database
}

// Upsert replaces the snapshot stored under key
func (r *StandingsRepository) Upsert(ctx context.Context, key string, snap *models.StandingsSnapshot) (err error) {
	start := time.Now()
	defer func() { observe("upsert", "standings", start, err) }()

	teams, err := json.Marshal(snap.Teams)
	if err != nil {
		return fmt.Errorf("failed to marshal standings rows: %w", err)
	}

	query := `
		INSERT INTO standings (id, league_name, teams, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			league_name = EXCLUDED.league_name,
			teams = EXCLUDED.teams,
			last_updated = EXCLUDED.last_updated
	`

	if _, err = r.db.Pool.Exec(ctx, query, key, snap.LeagueName, teams, snap.LastUpdated); err != nil {
		return fmt.Errorf("failed to upsert standings: %w", err)
	}

	log.Debug().
		Str("id", key).
		Int("teams", len(snap.Teams)).
		Msg("Standings saved")

	return nil
}

// Get returns the snapshot stored under key, or nil when there is none
func (r *StandingsRepository) Get(ctx context.Context, key string) (_ *models.StandingsSnapshot, err error) {
	start := time.Now()
	defer func() { observe("select", "standings", start, err) }()

	query := `
		SELECT id, league_name, teams, last_updated
		FROM standings
		WHERE id = $1
	`

	var (
		snap  models.StandingsSnapshot
		teams []byte
	)
	err = r.db.Pool.QueryRow(ctx, query, key).Scan(&snap.ID, &snap.LeagueName, &teams, &snap.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	if err = json.Unmarshal(teams, &snap.Teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal standings rows: %w", err)
	}
	snap.LastUpdated = snap.LastUpdated.UTC()

	return &snap, nil
}
