package service

import (
	"context"
	"log"
	"strings"
	"sync"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/pkg/apperror"
)

// ProfileService manages the business profile that brands invoices and
// gates the business routes. Profiles change rarely, so reads are served
// from an in-process cache that is dropped on every save.
type ProfileService struct {
	backend *backend.Client
	store   *localstore.Store

	mu     sync.RWMutex
	cached map[string]*entity.BusinessProfile
}

// NewProfileService creates a new profile service
func NewProfileService(client *backend.Client, store *localstore.Store) *ProfileService {
	return &ProfileService{
		backend: client,
		store:   store,
		cached:  make(map[string]*entity.BusinessProfile),
	}
}

// Get fetches the profile for an account. A not-found error means the
// account has not completed profile creation; callers distinguish that
// from unauthenticated.
func (s *ProfileService) Get(ctx context.Context, email string) (*entity.BusinessProfile, error) {
	s.mu.RLock()
	profile, ok := s.cached[email]
	s.mu.RUnlock()
	if ok {
		return profile, nil
	}

	profile, err := s.backend.GetBusinessProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached[email] = profile
	s.mu.Unlock()

	s.rememberCategory(profile.BusinessCategory)
	return profile, nil
}

// Exists reports whether the account has a business profile. Backend
// failures are surfaced, not treated as "no profile": the guard must not
// bounce an onboarded user to profile creation because of an outage.
func (s *ProfileService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.Get(ctx, email)
	if apperror.IsKind(err, apperror.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveProfileInput represents the profile save input
type SaveProfileInput struct {
	Profile entity.BusinessProfile
	Logo    *backend.FilePart
	Stamp   *backend.FilePart
}

func (in *SaveProfileInput) validate() error {
	if strings.TrimSpace(in.Profile.BusinessName) == "" {
		return apperror.NewValidationError("business_name", "Business name is required")
	}
	if strings.TrimSpace(in.Profile.BusinessMobile) == "" {
		return apperror.NewValidationError("business_mobile", "Business mobile is required")
	}
	if strings.TrimSpace(in.Profile.BusinessCategory) == "" {
		return apperror.NewValidationError("business_category", "Select a business category")
	}
	return nil
}

// Save creates or replaces the profile. The cache entry is dropped rather
// than updated because asset URLs are assigned by the backend.
func (s *ProfileService) Save(ctx context.Context, email string, input *SaveProfileInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	input.Profile.BusinessEmail = email

	err := s.backend.SaveBusinessProfile(ctx, backend.ProfileInput{
		Profile: input.Profile,
		Logo:    input.Logo,
		Stamp:   input.Stamp,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cached, email)
	s.mu.Unlock()

	s.rememberCategory(input.Profile.BusinessCategory)
	return nil
}

// rememberCategory persists the category so the navigation variant is
// known on the next startup without a profile fetch.
func (s *ProfileService) rememberCategory(category string) {
	if category == "" {
		return
	}
	prefs, err := s.store.LoadPreferences()
	if err != nil {
		log.Printf("profile: could not load preferences: %v", err)
		return
	}
	if prefs.BusinessCategory == category {
		return
	}
	prefs.BusinessCategory = category
	if err := s.store.SavePreferences(prefs); err != nil {
		log.Printf("profile: could not persist category: %v", err)
	}
}
