package request

// AddLineRequest adds an item to the draft order. UnitPrice overrides the
// catalog price for the merged line when present.
type AddLineRequest struct {
	ItemID    string   `json:"item_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	UnitPrice *float64 `json:"unit_price"`
}

// CustomerRequest replaces the draft's customer contact fields
type CustomerRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// SaveBillRequest represents the bill save request. BillDate is RFC 3339;
// empty means the save time.
type SaveBillRequest struct {
	BillDate string `json:"bill_date"`
}
