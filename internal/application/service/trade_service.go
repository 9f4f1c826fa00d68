package service

import (
	"context"
	"strings"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/pkg/apperror"
)

// TradeService proxies the intraday trading journal, a parallel module
// shown instead of billing when the business category is Share Market.
// The backend owns the data; the console scopes every call to the
// session's account.
type TradeService struct {
	backend *backend.Client
}

// NewTradeService creates a new trade service
func NewTradeService(client *backend.Client) *TradeService {
	return &TradeService{backend: client}
}

// List returns the journal entries for an account.
func (s *TradeService) List(ctx context.Context, userEmail string) ([]entity.TradeEntry, error) {
	return s.backend.ListTradeEntries(ctx, userEmail)
}

// Create saves a new journal entry under the session's account.
func (s *TradeService) Create(ctx context.Context, userEmail string, entry entity.TradeEntry) error {
	if strings.TrimSpace(entry.Date) == "" {
		return apperror.NewValidationError("date", "Entry date is required")
	}
	entry.UserEmail = userEmail
	return s.backend.CreateTradeEntry(ctx, entry)
}

// Update edits an existing journal entry.
func (s *TradeService) Update(ctx context.Context, userEmail, id string, entry entity.TradeEntry) error {
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("id", "Entry id is required")
	}
	entry.UserEmail = userEmail
	return s.backend.UpdateTradeEntry(ctx, id, entry)
}

// Delete removes a journal entry.
func (s *TradeService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("id", "Entry id is required")
	}
	return s.backend.DeleteTradeEntry(ctx, id)
}
