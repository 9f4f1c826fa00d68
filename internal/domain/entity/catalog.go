package entity

import (
	"encoding/json"

	"mims-console/pkg/money"
)

// CatalogItem is a sellable item as cached from the backend catalog.
// The cache is a per-view snapshot, not authoritative: quantity checks
// against it accept the stale-read race.
type CatalogItem struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	UnitPrice          int64  `json:"-"` // minor units
	AvailableQuantity  int    `json:"available_quantity"`
	OwnerBusinessEmail string `json:"owner_business_email"`
}

// MarshalJSON converts minor units to decimal for API responses
func (i CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(i),
		UnitPrice: money.ToFloat(i.UnitPrice),
	})
}

// UnmarshalJSON restores minor units from the decimal form so cached
// snapshots round-trip losslessly.
func (i *CatalogItem) UnmarshalJSON(data []byte) error {
	type Alias CatalogItem
	aux := &struct {
		*Alias
		UnitPrice float64 `json:"unit_price"`
	}{Alias: (*Alias)(i)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	i.UnitPrice = money.FromFloat(aux.UnitPrice)
	return nil
}
