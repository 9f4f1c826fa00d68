package entity

// TradeRecord is a single executed trade inside a journal entry.
type TradeRecord struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TradeEntry is one day's intraday trading journal entry. The trade
// journal is a parallel CRUD module owned entirely by the backend; the
// console only proxies it scoped to the session email.
type TradeEntry struct {
	ID                string        `json:"id"`
	UserEmail         string        `json:"user_email"`
	Date              string        `json:"date"`
	Day               string        `json:"day"`
	OverallProfitLoss string        `json:"overall_profit_loss"`
	NetProfitLoss     string        `json:"net_profit_loss"`
	GovCharges        string        `json:"gov_charges"`
	Brokerage         string        `json:"brokerage"`
	TotalTrade        string        `json:"total_trade"`
	TradeType         string        `json:"trade_type"`
	TradeIndicators   string        `json:"trade_indicators"`
	TradeRecords      []TradeRecord `json:"trade_records,omitempty"`
}
