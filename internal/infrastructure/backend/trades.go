package backend

import (
	"context"
	"net/url"

	"mims-console/internal/domain/entity"
)

type tradeWire struct {
	ID string `json:"_id"`
	entity.TradeEntry
}

// ListTradeEntries fetches the intraday journal for an account.
func (c *Client) ListTradeEntries(ctx context.Context, userEmail string) ([]entity.TradeEntry, error) {
	var wire []tradeWire
	path := "/intraday-entries?userEmail=" + url.QueryEscape(userEmail)
	if err := c.getJSON(ctx, path, &wire); err != nil {
		return nil, err
	}

	entries := make([]entity.TradeEntry, 0, len(wire))
	for _, w := range wire {
		e := w.TradeEntry
		e.ID = w.ID
		entries = append(entries, e)
	}
	return entries, nil
}

// CreateTradeEntry saves a new journal entry.
func (c *Client) CreateTradeEntry(ctx context.Context, entry entity.TradeEntry) error {
	return c.postJSON(ctx, "/intraday-new-entry", entry, nil)
}

// UpdateTradeEntry edits an existing journal entry.
func (c *Client) UpdateTradeEntry(ctx context.Context, id string, entry entity.TradeEntry) error {
	return c.putJSON(ctx, "/intraday-entry/"+url.PathEscape(id), entry, nil)
}

// DeleteTradeEntry removes a journal entry.
func (c *Client) DeleteTradeEntry(ctx context.Context, id string) error {
	return c.delete(ctx, "/intraday-entry/"+url.PathEscape(id))
}
