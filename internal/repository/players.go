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

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

const playerColumns = `id, name, number, position, photo_url, biography, goals, assists, created_at`

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID, &p.Name, &p.Number, &p.Position, &p.PhotoURL,
		&p.Biography, &p.Goals, &p.Assists, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, p *models.Player) (err error) {
	start := time.Now()
	defer func() { observe("insert", "players", start, err) }()

	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		p.ID, p.Name, p.Number, p.Position, p.PhotoURL,
		p.Biography, p.Goals, p.Assists, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	log.Debug().
		Str("id", p.ID).
		Str("name", p.Name).
		Str("position", p.Position).
		Msg("Player created")

	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (_ *models.Player, err error) {
	start := time.Now()
	defer func() { observe("select", "players", start, err) }()

	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p, err := scanPlayer(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return p, nil
}

// List returns players by shirt number (players without one last),
// optionally filtered by position
func (r *PlayerRepository) List(ctx context.Context, position string) (_ []*models.Player, err error) {
	start := time.Now()
	defer func() { observe("select", "players", start, err) }()

	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE ($1::text = '' OR position = $1)
		ORDER BY number ASC NULLS LAST, name
	`

	rows, err := r.db.Pool.Query(ctx, query, position)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := []*models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// Update overwrites the editable fields of a player
func (r *PlayerRepository) Update(ctx context.Context, p *models.Player) (err error) {
	start := time.Now()
	defer func() { observe("update", "players", start, err) }()

	query := `
		UPDATE players SET
			name = $2,
			number = $3,
			position = $4,
			photo_url = $5,
			biography = $6,
			goals = $7,
			assists = $8
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		p.ID, p.Name, p.Number, p.Position, p.PhotoURL, p.Biography, p.Goals, p.Assists,
	)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", p.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a player
func (r *PlayerRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "players", start, err) }()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}

	return nil
}
