package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubsite/backend/internal/models"
	"clubsite/backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// UserStore is the subset of the user repository seeding needs
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// SeedAdmin creates the configured admin account unless it already exists.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, users UserStore, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		log.Debug().Str("email", email).Msg("Admin user already exists")
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	if err := users.Create(ctx, models.NewUser(email, hash, time.Now())); err != nil {
		// another instance seeded it first
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", email).Msg("Admin user seeded")
	return true, nil
}
