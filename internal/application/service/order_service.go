package service

import (
	"context"
	"fmt"
	"sync"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/apperror"
)

// OrderService owns the draft order being assembled for each session.
// Drafts are deliberately unpersisted: a restart discards them, matching
// the expectation that an unsaved bill is scratch state. All mutations
// recompute line totals from unit price and quantity; the draft total is
// always re-reduced from the lines, never kept as a running counter.
type OrderService struct {
	catalog *CatalogService

	mu     sync.Mutex
	drafts map[string]*entity.DraftOrder
}

// NewOrderService creates a new order service
func NewOrderService(catalog *CatalogService) *OrderService {
	return &OrderService{
		catalog: catalog,
		drafts:  make(map[string]*entity.DraftOrder),
	}
}

// AddLineInput represents a line addition to the draft order
type AddLineInput struct {
	ItemID    string
	Quantity  int
	UnitPrice *int64 // minor units; overrides the catalog price when set
}

// AddLine adds quantity of an item to the draft. Adding an item already
// in the draft merges into the existing line: quantities sum, and the
// unit price stays unless this call carries an explicit override, in
// which case the override wins for the whole merged line.
func (s *OrderService) AddLine(ctx context.Context, businessEmail string, input *AddLineInput) (*entity.DraftOrder, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewInvalidQuantityError("Quantity must be at least 1")
	}
	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return nil, apperror.NewValidationError("unit_price", "Price cannot be negative")
	}

	item, err := s.catalog.Item(ctx, businessEmail, input.ItemID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draft(businessEmail)
	line := draft.Line(input.ItemID)

	newQuantity := input.Quantity
	if line != nil {
		newQuantity += line.Quantity
	}
	// Checked against the snapshot, not live stock: the catalog may be
	// stale, and the backend re-validates on save.
	if newQuantity > item.AvailableQuantity {
		return nil, apperror.NewInvalidQuantityError(
			fmt.Sprintf("Only %d of %s available", item.AvailableQuantity, item.Name))
	}

	unitPrice := item.UnitPrice
	if line != nil {
		unitPrice = line.UnitPriceUsed
	}
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	if line == nil {
		draft.Lines = append(draft.Lines, entity.DraftOrderLine{
			ItemID: input.ItemID,
			Name:   item.Name,
		})
		line = &draft.Lines[len(draft.Lines)-1]
	}
	line.Quantity = newQuantity
	line.UnitPriceUsed = unitPrice
	line.LineTotal = unitPrice * int64(newQuantity)

	return snapshot(draft), nil
}

// RemoveLine removes the line for itemID. Removing an absent line is a
// no-op, not an error: the outcome (line not in draft) already holds.
func (s *OrderService) RemoveLine(businessEmail, itemID string) *entity.DraftOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draft(businessEmail)
	for i := range draft.Lines {
		if draft.Lines[i].ItemID == itemID {
			draft.Lines = append(draft.Lines[:i], draft.Lines[i+1:]...)
			break
		}
	}
	return snapshot(draft)
}

// SetCustomer replaces the draft's customer contact fields. No validation
// here; the fields are checked at save and share time.
func (s *OrderService) SetCustomer(businessEmail string, customer entity.Customer) *entity.DraftOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draft(businessEmail)
	draft.Customer = customer
	return snapshot(draft)
}

// Draft returns the current draft order (empty when nothing was added).
func (s *OrderService) Draft(businessEmail string) *entity.DraftOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.draft(businessEmail))
}

// Reset discards the draft.
func (s *OrderService) Reset(businessEmail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, businessEmail)
}

// draft returns the live draft for a business, creating it if needed.
// Callers must hold s.mu.
func (s *OrderService) draft(businessEmail string) *entity.DraftOrder {
	d, ok := s.drafts[businessEmail]
	if !ok {
		d = &entity.DraftOrder{}
		s.drafts[businessEmail] = d
	}
	return d
}

// snapshot copies the draft so callers never share the mutable lines
// slice with the service.
func snapshot(d *entity.DraftOrder) *entity.DraftOrder {
	out := &entity.DraftOrder{
		Lines:    make([]entity.DraftOrderLine, len(d.Lines)),
		Customer: d.Customer,
	}
	copy(out.Lines, d.Lines)
	return out
}
