package request

import "mims-console/internal/domain/entity"

// TradeEntryRequest represents a trade journal entry create/update request
type TradeEntryRequest struct {
	Date              string               `json:"date" binding:"required"`
	Day               string               `json:"day"`
	OverallProfitLoss string               `json:"overall_profit_loss"`
	NetProfitLoss     string               `json:"net_profit_loss"`
	GovCharges        string               `json:"gov_charges"`
	Brokerage         string               `json:"brokerage"`
	TotalTrade        string               `json:"total_trade"`
	TradeType         string               `json:"trade_type"`
	TradeIndicators   string               `json:"trade_indicators"`
	TradeRecords      []entity.TradeRecord `json:"trade_records"`
}

// ToEntity converts the request into a journal entry. The user email is
// set by the service from the session, never from the request body.
func (r TradeEntryRequest) ToEntity() entity.TradeEntry {
	return entity.TradeEntry{
		Date:              r.Date,
		Day:               r.Day,
		OverallProfitLoss: r.OverallProfitLoss,
		NetProfitLoss:     r.NetProfitLoss,
		GovCharges:        r.GovCharges,
		Brokerage:         r.Brokerage,
		TotalTrade:        r.TotalTrade,
		TradeType:         r.TradeType,
		TradeIndicators:   r.TradeIndicators,
		TradeRecords:      r.TradeRecords,
	}
}
