package service

import (
	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/pkg/apperror"
)

// PreferencesService exposes the durable client-side preferences: the UI
// theme and the last-known business category.
type PreferencesService struct {
	store *localstore.Store
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(store *localstore.Store) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the stored preferences, with defaults when unset.
func (s *PreferencesService) Get() (entity.Preferences, error) {
	return s.store.LoadPreferences()
}

// Save persists the preferences.
func (s *PreferencesService) Save(p entity.Preferences) error {
	if p.Theme != "light" && p.Theme != "dark" {
		return apperror.NewValidationError("theme", "Theme must be light or dark")
	}
	return s.store.SavePreferences(p)
}
