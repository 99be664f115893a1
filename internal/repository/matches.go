package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubsite/backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// MatchRepository handles fixture and result database operations
type MatchRepository struct {
	db *Database
}

const matchColumns = `id, date, time, opponent, tournament, home_score, away_score, is_home, status,
	broadcast_link, report_link, home_team_logo, away_team_logo, created_at`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.Date, &m.Time, &m.Opponent, &m.Tournament,
		&m.HomeScore, &m.AwayScore, &m.IsHome, &m.Status,
		&m.BroadcastLink, &m.ReportLink, &m.HomeTeamLogo, &m.AwayTeamLogo,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new match
func (r *MatchRepository) Create(ctx context.Context, m *models.Match) (err error) {
	start := time.Now()
	defer func() { observe("insert", "matches", start, err) }()

	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		m.ID, m.Date, m.Time, m.Opponent, m.Tournament,
		m.HomeScore, m.AwayScore, m.IsHome, m.Status,
		m.BroadcastLink, m.ReportLink, m.HomeTeamLogo, m.AwayTeamLogo,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	log.Debug().
		Str("id", m.ID).
		Str("opponent", m.Opponent).
		Str("date", m.Date).
		Msg("Match created")

	return nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id string) (_ *models.Match, err error) {
	start := time.Now()
	defer func() { observe("select", "matches", start, err) }()

	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return m, nil
}

// List returns matches latest date first, optionally filtered by status
func (r *MatchRepository) List(ctx context.Context, status string) (_ []*models.Match, err error) {
	start := time.Now()
	defer func() { observe("select", "matches", start, err) }()

	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE ($1::text = '' OR status = $1)
		ORDER BY date DESC, time DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := []*models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// Update overwrites the editable fields of a match
func (r *MatchRepository) Update(ctx context.Context, m *models.Match) (err error) {
	start := time.Now()
	defer func() { observe("update", "matches", start, err) }()

	query := `
		UPDATE matches SET
			date = $2,
			time = $3,
			opponent = $4,
			tournament = $5,
			home_score = $6,
			away_score = $7,
			is_home = $8,
			status = $9,
			broadcast_link = $10,
			report_link = $11,
			home_team_logo = $12,
			away_team_logo = $13
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		m.ID, m.Date, m.Time, m.Opponent, m.Tournament,
		m.HomeScore, m.AwayScore, m.IsHome, m.Status,
		m.BroadcastLink, m.ReportLink, m.HomeTeamLogo, m.AwayTeamLogo,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", m.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a match
func (r *MatchRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "matches", start, err) }()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}

	return nil
}
