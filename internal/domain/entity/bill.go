package entity

import (
	"encoding/json"
	"time"

	"mims-console/pkg/money"
)

// BillLine is the canonical shape for a persisted order line. Backend
// payloads are heterogeneous across bill revisions (`productName` vs a
// nested `product.name`); they are normalized into this shape on receipt,
// not at every consumption site.
type BillLine struct {
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"-"` // minor units
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"-"` // minor units
}

// MarshalJSON converts minor units to decimal for API responses
func (l BillLine) MarshalJSON() ([]byte, error) {
	type Alias BillLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: money.ToFloat(l.UnitPrice),
		LineTotal: money.ToFloat(l.LineTotal),
	})
}

// Bill is a saved, backend-authoritative record of a completed order.
// Immutable from the client's perspective.
type Bill struct {
	ID            string     `json:"id"`
	BusinessEmail string     `json:"business_email,omitempty"`
	Customer      Customer   `json:"customer"`
	BillDate      time.Time  `json:"bill_date"`
	Lines         []BillLine `json:"lines"`
	Total         int64      `json:"-"` // minor units
}

// MarshalJSON converts minor units to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(b),
		Total: money.ToFloat(b.Total),
	})
}
