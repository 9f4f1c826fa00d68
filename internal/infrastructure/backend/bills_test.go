package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mims-console/pkg/apperror"
)

func TestListBillsNormalizesLineShapes(t *testing.T) {
	// Bill revisions differ: older lines nest the product, newer ones
	// carry a flat productName. Both must come back as the same shape.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{
				"_id": "b1",
				"businessEmail": "owner@shop.in",
				"customer": {"name": "Asha", "mobile": "919876543210"},
				"billDate": "2026-08-15T10:30:00Z",
				"order": [
					{"productName": "Rice 5kg", "price": 450, "quantity": 2, "totalPrice": 900},
					{"product": {"name": "Sugar 1kg"}, "price": 42, "quantity": 1, "totalPrice": 42}
				],
				"total": 942
			},
			{
				"_id": "b2",
				"businessEmail": "owner@shop.in",
				"customer": {"name": "Ravi"},
				"billDate": "2026-08-01T09:15",
				"order": [],
				"total": 0
			}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, &http.Client{})
	bills, err := client.ListBills(context.Background(), "owner@shop.in")
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("got %d bills, want 2", len(bills))
	}

	lines := bills[0].Lines
	if lines[0].ProductName != "Rice 5kg" {
		t.Errorf("flat line name = %q", lines[0].ProductName)
	}
	if lines[1].ProductName != "Sugar 1kg" {
		t.Errorf("nested line name = %q", lines[1].ProductName)
	}
	if lines[0].UnitPrice != 45000 || lines[0].LineTotal != 90000 {
		t.Errorf("amounts not in minor units: %d, %d", lines[0].UnitPrice, lines[0].LineTotal)
	}
	if bills[0].Total != 94200 {
		t.Errorf("bill total = %d, want 94200", bills[0].Total)
	}

	// Older bills use the zone-less datetime-local format.
	want := time.Date(2026, 8, 1, 9, 15, 0, 0, time.UTC)
	if !bills[1].BillDate.Equal(want) {
		t.Errorf("legacy bill date = %v, want %v", bills[1].BillDate, want)
	}
}

func TestRemoteErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   apperror.Kind
	}{
		{http.StatusUnauthorized, apperror.KindAuth},
		{http.StatusForbidden, apperror.KindAuth},
		{http.StatusNotFound, apperror.KindNotFound},
		{http.StatusInternalServerError, apperror.KindNetwork},
		{http.StatusUnprocessableEntity, apperror.KindValidation},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"message": "nope"}`))
		}))

		client := New(srv.URL, &http.Client{})
		_, err := client.ListBills(context.Background(), "owner@shop.in")
		if !apperror.IsKind(err, tt.kind) {
			t.Errorf("status %d: got %v, want kind %s", tt.status, err, tt.kind)
		}
		srv.Close()
	}
}

func TestTimeoutIsReportedDistinctly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(srv.URL, &http.Client{Timeout: 20 * time.Millisecond})
	_, err := client.ListBills(context.Background(), "owner@shop.in")
	if !apperror.IsKind(err, apperror.KindNetworkTimeout) {
		t.Errorf("got %v, want network timeout", err)
	}
}

func TestLoginLegacyStringResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Write([]byte(`"Incorrect password"`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, &http.Client{})
	err := client.Login(context.Background(), "owner@shop.in", "wrong")
	if !apperror.IsKind(err, apperror.KindAuth) {
		t.Fatalf("got %v, want auth error", err)
	}
	if err.Error() != "Incorrect password" {
		t.Errorf("backend message lost: %q", err.Error())
	}
}
