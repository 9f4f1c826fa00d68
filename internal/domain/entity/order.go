package entity

import (
	"encoding/json"

	"mims-console/pkg/money"
)

// DraftOrderLine is one line of an in-progress order. LineTotal is always
// UnitPriceUsed × Quantity; it is recomputed on every mutation.
type DraftOrderLine struct {
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	UnitPriceUsed int64  `json:"-"` // minor units
	Quantity      int    `json:"quantity"`
	LineTotal     int64  `json:"-"` // minor units
}

// MarshalJSON converts minor units to decimal for API responses
func (l DraftOrderLine) MarshalJSON() ([]byte, error) {
	type Alias DraftOrderLine
	return json.Marshal(&struct {
		Alias
		UnitPriceUsed float64 `json:"unit_price_used"`
		LineTotal     float64 `json:"line_total"`
	}{
		Alias:         Alias(l),
		UnitPriceUsed: money.ToFloat(l.UnitPriceUsed),
		LineTotal:     money.ToFloat(l.LineTotal),
	})
}

// Customer holds the free-form contact fields entered during billing.
// They are validated at save/share time, not while typing.
type Customer struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// DraftOrder is the unpersisted order being assembled for one session.
// Total is derived from the lines and never stored independently.
type DraftOrder struct {
	Lines    []DraftOrderLine `json:"lines"`
	Customer Customer         `json:"customer"`
}

// Total re-reduces the line totals. A plain sum, not an incremental
// counter, so repeated add/remove cycles cannot drift.
func (o *DraftOrder) Total() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.LineTotal
	}
	return total
}

// BillLines converts the draft lines into persisted-bill line shape.
func (o *DraftOrder) BillLines() []BillLine {
	lines := make([]BillLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, BillLine{
			ProductName: l.Name,
			UnitPrice:   l.UnitPriceUsed,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
		})
	}
	return lines
}

// Line returns the line for itemID, or nil.
func (o *DraftOrder) Line(itemID string) *DraftOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ItemID == itemID {
			return &o.Lines[i]
		}
	}
	return nil
}

// MarshalJSON adds the derived total to API responses
func (o DraftOrder) MarshalJSON() ([]byte, error) {
	type Alias DraftOrder
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: money.ToFloat(o.Total()),
	})
}
