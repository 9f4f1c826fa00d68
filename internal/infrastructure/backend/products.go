package backend

import (
	"context"
	"net/url"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/money"
)

// productWire is the backend's product document.
type productWire struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Email    string  `json:"email"`
}

func (w productWire) toEntity() entity.CatalogItem {
	return entity.CatalogItem{
		ID:                 w.ID,
		Name:               w.Name,
		UnitPrice:          money.FromFloat(w.Price),
		AvailableQuantity:  w.Quantity,
		OwnerBusinessEmail: w.Email,
	}
}

// ListProducts fetches the catalog for a business. Filtering by owner
// happens here because older backend deployments return every tenant's
// items from the unscoped endpoint.
func (c *Client) ListProducts(ctx context.Context, businessEmail string) ([]entity.CatalogItem, error) {
	var wire []productWire
	path := "/products"
	if businessEmail != "" {
		path += "?email=" + url.QueryEscape(businessEmail)
	}
	if err := c.getJSON(ctx, path, &wire); err != nil {
		return nil, err
	}

	items := make([]entity.CatalogItem, 0, len(wire))
	for _, w := range wire {
		if businessEmail != "" && w.Email != "" && w.Email != businessEmail {
			continue
		}
		items = append(items, w.toEntity())
	}
	return items, nil
}

// ProductInput carries the fields for product create/update.
type ProductInput struct {
	Name     string
	Price    int64 // minor units
	Quantity int
	Email    string
}

func (in ProductInput) wire() map[string]interface{} {
	return map[string]interface{}{
		"name":     in.Name,
		"price":    money.ToFloat(in.Price),
		"quantity": in.Quantity,
		"email":    in.Email,
	}
}

// AddProduct creates a catalog item.
func (c *Client) AddProduct(ctx context.Context, in ProductInput) error {
	return c.postJSON(ctx, "/add-product", in.wire(), nil)
}

// UpdateProduct edits a catalog item.
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	return c.putJSON(ctx, "/update-product/"+url.PathEscape(id), in.wire(), nil)
}

// DeleteProduct removes a catalog item.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/delete-product/"+url.PathEscape(id))
}
