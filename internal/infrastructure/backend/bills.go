package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/money"
)

// billLineWire tolerates the two line shapes found across bill revisions:
// a flat {"productName": ...} and a nested {"product": {"name": ...}}.
// Both are normalized into entity.BillLine immediately on receipt.
type billLineWire struct {
	ProductName string  `json:"productName"`
	Product     *struct {
		Name string `json:"name"`
	} `json:"product"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

func (w billLineWire) toEntity() entity.BillLine {
	name := w.ProductName
	if name == "" && w.Product != nil {
		name = w.Product.Name
	}
	return entity.BillLine{
		ProductName: name,
		UnitPrice:   money.FromFloat(w.Price),
		Quantity:    w.Quantity,
		LineTotal:   money.FromFloat(w.TotalPrice),
	}
}

type billWire struct {
	ID            string         `json:"_id"`
	BusinessEmail string         `json:"businessEmail"`
	Customer      entity.Customer `json:"customer"`
	BillDate      string         `json:"billDate"`
	Order         []billLineWire `json:"order"`
	Total         float64        `json:"total"`
}

func (w billWire) toEntity() entity.Bill {
	billDate, err := time.Parse(time.RFC3339, w.BillDate)
	if err != nil {
		// Older bills carry the datetime-local form without a zone.
		billDate, _ = time.Parse("2006-01-02T15:04", w.BillDate)
	}
	lines := make([]entity.BillLine, 0, len(w.Order))
	for _, l := range w.Order {
		lines = append(lines, l.toEntity())
	}
	return entity.Bill{
		ID:            w.ID,
		BusinessEmail: w.BusinessEmail,
		Customer:      w.Customer,
		BillDate:      billDate,
		Lines:         lines,
		Total:         money.FromFloat(w.Total),
	}
}

// ListBills fetches the bill history for a business, normalized and
// unsorted (callers order by bill date as needed).
func (c *Client) ListBills(ctx context.Context, businessEmail string) ([]entity.Bill, error) {
	var wire []billWire
	path := "/bills"
	if businessEmail != "" {
		path += "?businessEmail=" + url.QueryEscape(businessEmail)
	}
	if err := c.getJSON(ctx, path, &wire); err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(wire))
	for _, w := range wire {
		bills = append(bills, w.toEntity())
	}
	return bills, nil
}

// SaveBill persists a completed order. Returns the backend-assigned id
// when the backend reports one.
func (c *Client) SaveBill(ctx context.Context, bill entity.Bill) (string, error) {
	lines := make([]map[string]interface{}, 0, len(bill.Lines))
	for _, l := range bill.Lines {
		lines = append(lines, map[string]interface{}{
			"productName": l.ProductName,
			"price":       money.ToFloat(l.UnitPrice),
			"quantity":    l.Quantity,
			"totalPrice":  money.ToFloat(l.LineTotal),
		})
	}
	payload := map[string]interface{}{
		"businessEmail": bill.BusinessEmail,
		"customer":      bill.Customer,
		"billDate":      bill.BillDate.Format(time.RFC3339),
		"order":         lines,
		"total":         money.ToFloat(bill.Total),
	}

	var raw json.RawMessage
	if err := c.postJSON(ctx, "/save-bill", payload, &raw); err != nil {
		return "", err
	}

	var result struct {
		ID string `json:"_id"`
	}
	_ = json.Unmarshal(raw, &result)
	return result.ID, nil
}
