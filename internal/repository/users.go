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

// UserRepository handles admin accounts
type UserRepository struct {
	db *Database
}

// Create inserts a user; ErrDuplicate when the email is taken
func (r *UserRepository) Create(ctx context.Context, u *models.User) (err error) {
	start := time.Now()
	defer func() { observe("insert", "users", start, err) }()

	query := `
		INSERT INTO users (id, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.db.Pool.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Str("id", u.ID).
		Str("email", u.Email).
		Msg("User created")

	return nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (_ *models.User, err error) {
	start := time.Now()
	defer func() { observe("select", "users", start, err) }()

	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var u models.User
	err = r.db.Pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}
