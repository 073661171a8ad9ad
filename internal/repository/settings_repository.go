package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aaamo-store/internal/domain"
)

var (
	ErrSettingsNotFound = errors.New("site settings not found")
)

// SettingsRepository defines the interface for the site settings singleton
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Save(ctx context.Context, settings *domain.SiteSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the single settings row
func (r *settingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	query := `
		SELECT site_name, facebook_url, instagram_url, whatsapp_number, phone_number, email
		FROM site_settings
		WHERE id = 1
	`

	settings := &domain.SiteSettings{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.SiteName,
		&settings.FacebookURL,
		&settings.InstagramURL,
		&settings.WhatsappNumber,
		&settings.PhoneNumber,
		&settings.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}

	return settings, nil
}

// Save overwrites the settings row, creating it when missing
func (r *settingsRepository) Save(ctx context.Context, settings *domain.SiteSettings) error {
	query := `
		INSERT INTO site_settings (id, site_name, facebook_url, instagram_url, whatsapp_number, phone_number, email)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET site_name = EXCLUDED.site_name, facebook_url = EXCLUDED.facebook_url,
		    instagram_url = EXCLUDED.instagram_url, whatsapp_number = EXCLUDED.whatsapp_number,
		    phone_number = EXCLUDED.phone_number, email = EXCLUDED.email
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		settings.SiteName,
		settings.FacebookURL,
		settings.InstagramURL,
		settings.WhatsappNumber,
		settings.PhoneNumber,
		settings.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}

	return nil
}
