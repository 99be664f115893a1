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

// NewsRepository handles news article database operations
type NewsRepository struct {
	db *Database
}

const newsColumns = `id, title, content, category, image_url, tags, created_at, updated_at`

func scanNews(row pgx.Row) (*models.News, error) {
	var n models.News
	err := row.Scan(
		&n.ID, &n.Title, &n.Content, &n.Category, &n.ImageURL,
		&n.Tags, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

// Create inserts a new article
func (r *NewsRepository) Create(ctx context.Context, n *models.News) (err error) {
	start := time.Now()
	defer func() { observe("insert", "news", start, err) }()

	query := `
		INSERT INTO news (` + newsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		n.ID, n.Title, n.Content, n.Category, n.ImageURL,
		n.Tags, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}

	log.Debug().
		Str("id", n.ID).
		Str("category", n.Category).
		Msg("News created")

	return nil
}

// GetByID retrieves an article by ID
func (r *NewsRepository) GetByID(ctx context.Context, id string) (_ *models.News, err error) {
	start := time.Now()
	defer func() { observe("select", "news", start, err) }()

	query := `SELECT ` + newsColumns + ` FROM news WHERE id = $1`

	n, err := scanNews(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("news %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	return n, nil
}

// List returns articles newest first, optionally filtered by category
func (r *NewsRepository) List(ctx context.Context, category string) (_ []*models.News, err error) {
	start := time.Now()
	defer func() { observe("select", "news", start, err) }()

	query := `
		SELECT ` + newsColumns + `
		FROM news
		WHERE ($1::text = '' OR category = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	items := []*models.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news: %w", err)
	}

	return items, nil
}

// Update overwrites the editable fields of an article
func (r *NewsRepository) Update(ctx context.Context, n *models.News) (err error) {
	start := time.Now()
	defer func() { observe("update", "news", start, err) }()

	query := `
		UPDATE news SET
			title = $2,
			content = $3,
			category = $4,
			image_url = $5,
			tags = $6,
			updated_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		n.ID, n.Title, n.Content, n.Category, n.ImageURL, n.Tags, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("news %s: %w", n.ID, ErrNotFound)
	}

	return nil
}

// Delete removes an article
func (r *NewsRepository) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "news", start, err) }()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("news %s: %w", id, ErrNotFound)
	}

	return nil
}
