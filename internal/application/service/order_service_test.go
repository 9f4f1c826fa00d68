package service

import (
	"context"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/cache"
	"mims-console/pkg/apperror"
)

const testBusiness = "owner@shop.in"

// newTestOrderService seeds the catalog snapshot directly; the backend
// client points at a dead address so any accidental network call fails
// fast instead of hanging the test.
func newTestOrderService(items []entity.CatalogItem) *OrderService {
	c := cache.NewCatalogCache(nil)
	c.Put(context.Background(), testBusiness, items)
	catalog := NewCatalogService(backend.New("http://127.0.0.1:1", &http.Client{Timeout: time.Second}), c)
	return NewOrderService(catalog)
}

func testCatalog() []entity.CatalogItem {
	return []entity.CatalogItem{
		{ID: "p1", Name: "Rice 5kg", UnitPrice: 45000, AvailableQuantity: 10, OwnerBusinessEmail: testBusiness},
		{ID: "p2", Name: "Sugar 1kg", UnitPrice: 4200, AvailableQuantity: 3, OwnerBusinessEmail: testBusiness},
	}
}

func TestAddLineUsesCatalogPrice(t *testing.T) {
	s := newTestOrderService(testCatalog())

	draft, err := s.AddLine(context.Background(), testBusiness, &AddLineInput{ItemID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if len(draft.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(draft.Lines))
	}
	line := draft.Lines[0]
	if line.UnitPriceUsed != 45000 {
		t.Errorf("unit price = %d, want 45000", line.UnitPriceUsed)
	}
	if line.LineTotal != 90000 {
		t.Errorf("line total = %d, want 90000", line.LineTotal)
	}
}

func TestAddLineMergesExisting(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 2}); err != nil {
		t.Fatalf("first AddLine: %v", err)
	}
	draft, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 3})
	if err != nil {
		t.Fatalf("second AddLine: %v", err)
	}

	if len(draft.Lines) != 1 {
		t.Fatalf("merge produced %d lines, want 1", len(draft.Lines))
	}
	line := draft.Lines[0]
	if line.Quantity != 5 {
		t.Errorf("merged quantity = %d, want 5", line.Quantity)
	}
	if line.UnitPriceUsed != 45000 {
		t.Errorf("merged price = %d, want the original 45000", line.UnitPriceUsed)
	}
	if line.LineTotal != 5*45000 {
		t.Errorf("merged total = %d, want %d", line.LineTotal, 5*45000)
	}
}

func TestAddLinePriceOverride(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	override := int64(40000)
	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	draft, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1, UnitPrice: &override})
	if err != nil {
		t.Fatalf("AddLine with override: %v", err)
	}

	line := draft.Lines[0]
	if line.UnitPriceUsed != 40000 {
		t.Errorf("override did not win: price = %d", line.UnitPriceUsed)
	}
	// The override reprices the whole merged line, not just the new units.
	if line.LineTotal != 2*40000 {
		t.Errorf("merged total = %d, want %d", line.LineTotal, 2*40000)
	}
}

func TestAddLineQuantityValidation(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 0}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("zero quantity: got %v, want validation error", err)
	}
	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: -2}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("negative quantity: got %v, want validation error", err)
	}

	// p2 has 3 in stock; the merged quantity must respect the snapshot.
	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p2", Quantity: 2}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p2", Quantity: 2}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("over-stock merge: got %v, want validation error", err)
	}

	// The failed add must not have touched the draft.
	if got := s.Draft(testBusiness).Lines[0].Quantity; got != 2 {
		t.Errorf("draft mutated by failed add: quantity = %d, want 2", got)
	}
}

func TestAddLineUnknownItem(t *testing.T) {
	s := newTestOrderService(testCatalog())

	_, err := s.AddLine(context.Background(), testBusiness, &AddLineInput{ItemID: "ghost", Quantity: 1})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("unknown item: got %v, want not found", err)
	}
}

func TestRemoveLineAbsentIsNoop(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	draft := s.RemoveLine(testBusiness, "never-added")
	if len(draft.Lines) != 1 {
		t.Errorf("no-op remove changed the draft: %d lines", len(draft.Lines))
	}

	draft = s.RemoveLine(testBusiness, "p1")
	if len(draft.Lines) != 0 {
		t.Errorf("remove left %d lines", len(draft.Lines))
	}
}

func TestResetDiscardsDraft(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	s.SetCustomer(testBusiness, entity.Customer{Name: "Asha"})
	s.Reset(testBusiness)

	draft := s.Draft(testBusiness)
	if len(draft.Lines) != 0 || draft.Customer.Name != "" {
		t.Errorf("reset left state behind: %+v", draft)
	}
}

// TestDraftTotalNeverDrifts hammers the draft with random add/remove
// cycles and checks the derived total against an independent re-reduce
// after every step.
func TestDraftTotalNeverDrifts(t *testing.T) {
	items := make([]entity.CatalogItem, 8)
	for i := range items {
		items[i] = entity.CatalogItem{
			ID:                 string(rune('a' + i)),
			Name:               "Item " + string(rune('A'+i)),
			UnitPrice:          int64(100 * (i + 1)),
			AvailableQuantity:  1_000_000,
			OwnerBusinessEmail: testBusiness,
		}
	}
	s := newTestOrderService(items)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		id := items[rng.Intn(len(items))].ID
		var draft *entity.DraftOrder
		if rng.Intn(3) == 0 {
			draft = s.RemoveLine(testBusiness, id)
		} else {
			var err error
			draft, err = s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: id, Quantity: 1 + rng.Intn(5)})
			if err != nil {
				t.Fatalf("step %d: AddLine: %v", i, err)
			}
		}

		var want int64
		for _, l := range draft.Lines {
			if l.LineTotal != l.UnitPriceUsed*int64(l.Quantity) {
				t.Fatalf("step %d: line total %d != %d x %d", i, l.LineTotal, l.UnitPriceUsed, l.Quantity)
			}
			want += l.LineTotal
		}
		if got := draft.Total(); got != want {
			t.Fatalf("step %d: total drifted: %d != %d", i, got, want)
		}
	}
}

func TestDraftsAreIsolatedPerBusiness(t *testing.T) {
	s := newTestOrderService(testCatalog())
	ctx := context.Background()

	other := "other@shop.in"
	c := cache.NewCatalogCache(nil)
	_ = c // the other business has no snapshot; only mutate the first

	if _, err := s.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if got := len(s.Draft(other).Lines); got != 0 {
		t.Errorf("draft leaked across businesses: %d lines", got)
	}
}
