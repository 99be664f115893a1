package repository

import (
	"context"
	"fmt"
	"time"

	"clubsite/backend/internal/models"
)

// SettingsRepository handles the singleton site settings row
type SettingsRepository struct {
	db *Database
}

const settingsColumns = `id, logo_url, stadium_name, stadium_info, contact_email, contact_phone, contact_address`

// Get returns the settings row, creating an empty one on first access
func (r *SettingsRepository) Get(ctx context.Context) (_ *models.Settings, err error) {
	start := time.Now()
	defer func() { observe("select", "settings", start, err) }()

	if _, err = r.db.Pool.Exec(ctx,
		`INSERT INTO settings (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		models.SettingsID,
	); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	query := `SELECT ` + settingsColumns + ` FROM settings WHERE id = $1`

	var s models.Settings
	err = r.db.Pool.QueryRow(ctx, query, models.SettingsID).Scan(
		&s.ID, &s.LogoURL, &s.StadiumName, &s.StadiumInfo,
		&s.ContactEmail, &s.ContactPhone, &s.ContactAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &s, nil
}

// Update sets the non-nil fields of upd and returns the resulting row
func (r *SettingsRepository) Update(ctx context.Context, upd *models.SettingsUpdate) (_ *models.Settings, err error) {
	start := time.Now()
	defer func() { observe("upsert", "settings", start, err) }()

	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			logo_url = COALESCE(EXCLUDED.logo_url, settings.logo_url),
			stadium_name = COALESCE(EXCLUDED.stadium_name, settings.stadium_name),
			stadium_info = COALESCE(EXCLUDED.stadium_info, settings.stadium_info),
			contact_email = COALESCE(EXCLUDED.contact_email, settings.contact_email),
			contact_phone = COALESCE(EXCLUDED.contact_phone, settings.contact_phone),
			contact_address = COALESCE(EXCLUDED.contact_address, settings.contact_address)
		RETURNING ` + settingsColumns

	var s models.Settings
	err = r.db.Pool.QueryRow(ctx, query,
		models.SettingsID, upd.LogoURL, upd.StadiumName, upd.StadiumInfo,
		upd.ContactEmail, upd.ContactPhone, upd.ContactAddress,
	).Scan(
		&s.ID, &s.LogoURL, &s.StadiumName, &s.StadiumInfo,
		&s.ContactEmail, &s.ContactPhone, &s.ContactAddress,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return &s, nil
}
