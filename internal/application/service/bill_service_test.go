package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/cache"
	"mims-console/pkg/apperror"
)

func newTestBillService(t *testing.T, handler http.Handler) (*BillService, *OrderService, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)

	c := cache.NewCatalogCache(nil)
	c.Put(context.Background(), testBusiness, testCatalog())
	client := backend.New(srv.URL, &http.Client{})
	orders := NewOrderService(NewCatalogService(client, c))
	bills := NewBillService(client, orders, "91")

	return bills, orders, srv.Close
}

func fillDraft(t *testing.T, orders *OrderService) {
	t.Helper()
	ctx := context.Background()
	if _, err := orders.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 2}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	orders.SetCustomer(testBusiness, entity.Customer{Name: "Asha", Mobile: "98765 43210", Email: "asha@example.com"})
}

func TestSaveBill(t *testing.T) {
	var payload map[string]interface{}
	bills, orders, done := newTestBillService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/save-bill" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"_id":"64f1c2e9a3b4d5e6f7a8b9c0"}`))
	}))
	defer done()

	fillDraft(t, orders)

	bill, err := bills.SaveBill(context.Background(), testBusiness, &SaveBillInput{})
	if err != nil {
		t.Fatalf("SaveBill: %v", err)
	}

	if bill.ID != "64f1c2e9a3b4d5e6f7a8b9c0" {
		t.Errorf("bill id = %q", bill.ID)
	}
	if bill.Total != 90000 {
		t.Errorf("bill total = %d, want 90000", bill.Total)
	}
	if bill.Customer.Mobile != "919876543210" {
		t.Errorf("mobile not normalized: %q", bill.Customer.Mobile)
	}

	if payload["businessEmail"] != testBusiness {
		t.Errorf("payload businessEmail = %v", payload["businessEmail"])
	}
	if payload["total"] != 900.0 {
		t.Errorf("payload total = %v, want decimal 900", payload["total"])
	}

	// A confirmed save resets the draft.
	if got := len(orders.Draft(testBusiness).Lines); got != 0 {
		t.Errorf("draft not reset after save: %d lines", got)
	}
}

func TestSaveBillValidation(t *testing.T) {
	bills, orders, done := newTestBillService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend reached despite invalid draft")
	}))
	defer done()
	ctx := context.Background()

	// Empty draft.
	if _, err := bills.SaveBill(ctx, testBusiness, &SaveBillInput{}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("empty draft: got %v, want validation error", err)
	}

	// Missing customer name.
	if _, err := orders.AddLine(ctx, testBusiness, &AddLineInput{ItemID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	orders.SetCustomer(testBusiness, entity.Customer{Mobile: "9876543210"})
	if _, err := bills.SaveBill(ctx, testBusiness, &SaveBillInput{}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("missing name: got %v, want validation error", err)
	}

	// Bad mobile.
	orders.SetCustomer(testBusiness, entity.Customer{Name: "Asha", Mobile: "12"})
	if _, err := bills.SaveBill(ctx, testBusiness, &SaveBillInput{}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("bad mobile: got %v, want validation error", err)
	}
}

func TestSaveBillBackendFailureKeepsDraft(t *testing.T) {
	bills, orders, done := newTestBillService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer done()

	fillDraft(t, orders)

	_, err := bills.SaveBill(context.Background(), testBusiness, &SaveBillInput{})
	if !apperror.IsKind(err, apperror.KindNetwork) {
		t.Fatalf("got %v, want network error", err)
	}
	// The draft must survive so the user can retry.
	if got := len(orders.Draft(testBusiness).Lines); got != 1 {
		t.Errorf("draft lost after failed save: %d lines", got)
	}
}

func TestRecentBills(t *testing.T) {
	bills, _, done := newTestBillService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var wire []map[string]interface{}
		for i := 1; i <= 6; i++ {
			wire = append(wire, map[string]interface{}{
				"_id":      fmt.Sprintf("bill-%d", i),
				"billDate": fmt.Sprintf("2026-08-%02dT10:00:00Z", i),
				"customer": map[string]string{"name": "Asha"},
				"order":    []interface{}{},
				"total":    100.0,
			})
		}
		json.NewEncoder(w).Encode(wire)
	}))
	defer done()

	recent, err := bills.RecentBills(context.Background(), testBusiness)
	if err != nil {
		t.Fatalf("RecentBills: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("got %d recent bills, want 4", len(recent))
	}
	// Newest first.
	if recent[0].ID != "bill-6" || recent[3].ID != "bill-3" {
		t.Errorf("wrong order: %s ... %s", recent[0].ID, recent[3].ID)
	}
}

func TestSearchBillsByCustomerName(t *testing.T) {
	bills, _, done := newTestBillService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"_id":"b1","billDate":"2026-08-01T10:00:00Z","customer":{"name":"Asha Verma"},"order":[],"total":100},
			{"_id":"b2","billDate":"2026-08-02T10:00:00Z","customer":{"name":"Ravi"},"order":[],"total":200},
			{"_id":"b3","billDate":"2026-08-03T10:00:00Z","customer":{"name":"asha k"},"order":[],"total":300}
		]`))
	}))
	defer done()
	ctx := context.Background()

	got, err := bills.SearchBills(ctx, testBusiness, " Asha ")
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b3" || got[1].ID != "b1" {
		t.Errorf("unexpected matches: %+v", got)
	}

	got, err = bills.SearchBills(ctx, testBusiness, "")
	if err != nil {
		t.Fatalf("SearchBills: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("empty query returned %d bills, want 3", len(got))
	}
}
