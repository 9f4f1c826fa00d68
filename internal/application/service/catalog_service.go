package service

import (
	"context"
	"log"
	"strings"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/cache"
	"mims-console/pkg/apperror"
)

// CatalogService loads the per-business catalog and keeps the last good
// snapshot cached. The snapshot is what draft-order quantity checks run
// against, so it must survive a failed refresh.
type CatalogService struct {
	backend *backend.Client
	cache   *cache.CatalogCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client *backend.Client, catalogCache *cache.CatalogCache) *CatalogService {
	return &CatalogService{
		backend: client,
		cache:   catalogCache,
	}
}

// CatalogView is a catalog load result. Stale is set when the backend was
// unreachable and the items come from the cached snapshot instead.
type CatalogView struct {
	Items []entity.CatalogItem `json:"items"`
	Stale bool                 `json:"stale"`
}

// Load fetches the catalog for a business. On transport failure it falls
// back to the cached snapshot (marked stale) so the order flow keeps
// working against last-known data; only a failure with no snapshot at all
// is surfaced as an error.
func (s *CatalogService) Load(ctx context.Context, businessEmail string) (*CatalogView, error) {
	items, err := s.backend.ListProducts(ctx, businessEmail)
	if err != nil {
		if cached, ok := s.cache.Get(ctx, businessEmail); ok {
			log.Printf("catalog: refresh failed, serving snapshot: %v", err)
			return &CatalogView{Items: cached, Stale: true}, nil
		}
		return nil, err
	}

	s.cache.Put(ctx, businessEmail, items)
	return &CatalogView{Items: items}, nil
}

// ProductInput represents the product create/update input
type ProductInput struct {
	Name     string
	Price    int64 // minor units
	Quantity int
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewValidationError("name", "Product name is required")
	}
	if in.Price < 0 {
		return apperror.NewValidationError("price", "Price cannot be negative")
	}
	if in.Quantity < 0 {
		return apperror.NewInvalidQuantityError("Quantity cannot be negative")
	}
	return nil
}

// AddProduct creates a catalog item and refreshes the snapshot.
func (s *CatalogService) AddProduct(ctx context.Context, businessEmail string, input *ProductInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	err := s.backend.AddProduct(ctx, backend.ProductInput{
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
		Email:    businessEmail,
	})
	if err != nil {
		return err
	}
	s.refresh(ctx, businessEmail)
	return nil
}

// UpdateProduct edits a catalog item and refreshes the snapshot.
func (s *CatalogService) UpdateProduct(ctx context.Context, businessEmail, id string, input *ProductInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	err := s.backend.UpdateProduct(ctx, id, backend.ProductInput{
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
		Email:    businessEmail,
	})
	if err != nil {
		return err
	}
	s.refresh(ctx, businessEmail)
	return nil
}

// DeleteProduct removes a catalog item and refreshes the snapshot.
func (s *CatalogService) DeleteProduct(ctx context.Context, businessEmail, id string) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, businessEmail)
	return nil
}

// Item resolves a catalog item from the current snapshot, loading the
// catalog first when no snapshot exists yet.
func (s *CatalogService) Item(ctx context.Context, businessEmail, itemID string) (*entity.CatalogItem, error) {
	if item, ok := s.cache.Item(ctx, businessEmail, itemID); ok {
		return item, nil
	}
	if _, err := s.Load(ctx, businessEmail); err != nil {
		return nil, err
	}
	if item, ok := s.cache.Item(ctx, businessEmail, itemID); ok {
		return item, nil
	}
	return nil, apperror.NewNotFoundError("Catalog item")
}

// refresh re-reads the catalog after a mutation, best effort. The write
// already succeeded; a failed re-read only leaves the snapshot older.
func (s *CatalogService) refresh(ctx context.Context, businessEmail string) {
	items, err := s.backend.ListProducts(ctx, businessEmail)
	if err != nil {
		log.Printf("catalog: post-write refresh failed: %v", err)
		return
	}
	s.cache.Put(ctx, businessEmail, items)
}
