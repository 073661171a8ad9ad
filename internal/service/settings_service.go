package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/repository"
)

// SettingsService defines the interface for the site settings singleton
type SettingsService interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, input domain.SiteSettings) (*domain.SiteSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     domain.SiteSettings
}

// NewSettingsService creates a new instance of SettingsService.
// defaults are served until the first save.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults domain.SiteSettings) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, defaults: defaults}
}

func (s *settingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			d := s.defaults
			return &d, nil
		}
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return settings, nil
}

// Update overwrites every field; an empty site name keeps the stored one
func (s *settingsService) Update(ctx context.Context, input domain.SiteSettings) (*domain.SiteSettings, error) {
	input.SiteName = strings.TrimSpace(input.SiteName)
	input.FacebookURL = strings.TrimSpace(input.FacebookURL)
	input.InstagramURL = strings.TrimSpace(input.InstagramURL)
	input.WhatsappNumber = strings.TrimSpace(input.WhatsappNumber)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	input.Email = strings.TrimSpace(input.Email)

	if input.Email == "" {
		return nil, ErrIncompleteData
	}
	if !domain.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	if input.SiteName == "" {
		current, err := s.Get(ctx)
		if err != nil {
			return nil, err
		}
		input.SiteName = current.SiteName
	}

	if err := s.settingsRepo.Save(ctx, &input); err != nil {
		return nil, fmt.Errorf("failed to save site settings: %w", err)
	}
	return &input, nil
}
