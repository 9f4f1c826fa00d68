package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/cache"
	"mims-console/pkg/apperror"
)

func TestLoadFailsSoftWithSnapshot(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"_id": "p1", "name": "Rice 5kg", "price": 450, "quantity": 10, "email": "owner@shop.in"}]`))
	}))
	defer srv.Close()

	s := NewCatalogService(backend.New(srv.URL, &http.Client{}), cache.NewCatalogCache(nil))
	ctx := context.Background()

	view, err := s.Load(ctx, testBusiness)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if view.Stale {
		t.Error("fresh load marked stale")
	}
	if len(view.Items) != 1 || view.Items[0].UnitPrice != 45000 {
		t.Fatalf("unexpected items: %+v", view.Items)
	}

	// Backend goes down: the last snapshot is served, marked stale.
	healthy.Store(false)
	view, err = s.Load(ctx, testBusiness)
	if err != nil {
		t.Fatalf("Load with snapshot: %v", err)
	}
	if !view.Stale {
		t.Error("snapshot fallback not marked stale")
	}
	if len(view.Items) != 1 {
		t.Errorf("snapshot lost: %d items", len(view.Items))
	}
}

func TestLoadFailsHardWithoutSnapshot(t *testing.T) {
	s := NewCatalogService(
		backend.New("http://127.0.0.1:1", &http.Client{Timeout: time.Second}),
		cache.NewCatalogCache(nil),
	)

	_, err := s.Load(context.Background(), testBusiness)
	if !apperror.IsKind(err, apperror.KindNetwork) && !apperror.IsKind(err, apperror.KindNetworkTimeout) {
		t.Errorf("got %v, want a network error", err)
	}
}

func TestProductInputValidation(t *testing.T) {
	s := NewCatalogService(
		backend.New("http://127.0.0.1:1", &http.Client{Timeout: time.Second}),
		cache.NewCatalogCache(nil),
	)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ProductInput
	}{
		{"empty name", ProductInput{Name: "  ", Price: 100, Quantity: 1}},
		{"negative price", ProductInput{Name: "Rice", Price: -1, Quantity: 1}},
		{"negative quantity", ProductInput{Name: "Rice", Price: 100, Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddProduct(ctx, testBusiness, &tt.input)
			if !apperror.IsKind(err, apperror.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}
