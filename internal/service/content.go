package service

import (
	"context"

	"github.com/lalith-99/pressgate/internal/auth"
	"github.com/lalith-99/pressgate/internal/models"
)

// The content-serving surface. Callers authenticate with a tenant API
// key, never a session token, and only published content comes back.

// GetPublishedPage serves GET /pages/{tenant}/{slug}.
func (s *Service) GetPublishedPage(ctx context.Context, apiKey, tenantID, slug string) (*models.Page, error) {
	identity, err := auth.ValidateAPIKey(ctx, s.store.Tenants(), tenantID, apiKey)
	if err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	page, err := s.store.Pages().GetPublished(ctx, tenantID, slug)
	if err != nil {
		return nil, translate(err, "page")
	}
	return page, nil
}

// GetActiveTheme serves GET /themes/{tenant}.
func (s *Service) GetActiveTheme(ctx context.Context, apiKey, tenantID string) (*models.Theme, error) {
	identity, err := auth.ValidateAPIKey(ctx, s.store.Tenants(), tenantID, apiKey)
	if err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	theme, err := s.store.Themes().GetActive(ctx, tenantID)
	if err != nil {
		return nil, translate(err, "theme")
	}
	return theme, nil
}

// GetTheme serves GET /themes/{tenant}/{themeId}.
func (s *Service) GetTheme(ctx context.Context, apiKey, tenantID, themeID string) (*models.Theme, error) {
	identity, err := auth.ValidateAPIKey(ctx, s.store.Tenants(), tenantID, apiKey)
	if err != nil {
		return nil, err
	}
	if err := auth.Decide(identity, tenantID, auth.CapReadContent); err != nil {
		return nil, err
	}

	theme, err := s.store.Themes().Get(ctx, tenantID, themeID)
	if err != nil {
		return nil, translate(err, "theme")
	}
	return theme, nil
}
