package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/pkg/apperror"
)

// recentBillCount is how many bills the dashboard's recent list shows.
const recentBillCount = 4

// BillService turns a finished draft into a persisted bill and reads the
// bill history back. Saved bills are backend-authoritative and immutable
// from the console's side.
type BillService struct {
	backend     *backend.Client
	orders      *OrderService
	countryCode string
}

// NewBillService creates a new bill service
func NewBillService(client *backend.Client, orders *OrderService, countryCode string) *BillService {
	return &BillService{
		backend:     client,
		orders:      orders,
		countryCode: countryCode,
	}
}

// SaveBillInput represents the save input. A zero BillDate means "now".
type SaveBillInput struct {
	BillDate time.Time
}

// SaveBill validates the draft, persists it and resets the draft. The
// reset happens only after the backend confirms the save, so a failed
// save leaves the draft intact for retry.
func (s *BillService) SaveBill(ctx context.Context, businessEmail string, input *SaveBillInput) (*entity.Bill, error) {
	draft := s.orders.Draft(businessEmail)
	if len(draft.Lines) == 0 {
		return nil, apperror.NewValidationError("lines", "Add at least one item to the bill")
	}
	if strings.TrimSpace(draft.Customer.Name) == "" {
		return nil, apperror.NewValidationError("customer.name", "Customer name is required")
	}
	mobile, err := NormalizePhone(draft.Customer.Mobile, s.countryCode)
	if err != nil {
		return nil, err
	}

	billDate := input.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}

	lines := draft.BillLines()

	customer := draft.Customer
	customer.Mobile = mobile

	bill := entity.Bill{
		BusinessEmail: businessEmail,
		Customer:      customer,
		BillDate:      billDate,
		Lines:         lines,
		Total:         draft.Total(),
	}

	id, err := s.backend.SaveBill(ctx, bill)
	if err != nil {
		return nil, err
	}
	bill.ID = id

	s.orders.Reset(businessEmail)
	return &bill, nil
}

// ListBills returns the bill history, newest first.
func (s *BillService) ListBills(ctx context.Context, businessEmail string) ([]entity.Bill, error) {
	bills, err := s.backend.ListBills(ctx, businessEmail)
	if err != nil {
		return nil, err
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].BillDate.After(bills[j].BillDate)
	})
	return bills, nil
}

// SearchBills returns the history filtered by a case-insensitive customer
// name match. An empty query returns everything.
func (s *BillService) SearchBills(ctx context.Context, businessEmail, query string) ([]entity.Bill, error) {
	bills, err := s.ListBills(ctx, businessEmail)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return bills, nil
	}
	matched := bills[:0]
	for _, b := range bills {
		if strings.Contains(strings.ToLower(b.Customer.Name), query) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// RecentBills returns the newest bills for the dashboard.
func (s *BillService) RecentBills(ctx context.Context, businessEmail string) ([]entity.Bill, error) {
	bills, err := s.ListBills(ctx, businessEmail)
	if err != nil {
		return nil, err
	}
	if len(bills) > recentBillCount {
		bills = bills[:recentBillCount]
	}
	return bills, nil
}

// GetBill fetches one bill by id.
func (s *BillService) GetBill(ctx context.Context, businessEmail, id string) (*entity.Bill, error) {
	bills, err := s.backend.ListBills(ctx, businessEmail)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].ID == id {
			return &bills[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Bill")
}
