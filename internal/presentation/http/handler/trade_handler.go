package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/presentation/http/dto/request"
	"mims-console/internal/presentation/http/dto/response"
)

// TradeHandler handles trade journal HTTP requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// List returns the session's journal entries
func (h *TradeHandler) List(c *gin.Context) {
	entries, err := h.tradeService.List(c.Request.Context(), SessionEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Trade journal", entries)
}

// Create saves a new journal entry
func (h *TradeHandler) Create(c *gin.Context) {
	var req request.TradeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tradeService.Create(c.Request.Context(), SessionEmail(c), req.ToEntity()); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Entry saved", nil)
}

// Update edits a journal entry
func (h *TradeHandler) Update(c *gin.Context) {
	var req request.TradeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tradeService.Update(c.Request.Context(), SessionEmail(c), c.Param("id"), req.ToEntity()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entry updated", nil)
}

// Delete removes a journal entry
func (h *TradeHandler) Delete(c *gin.Context) {
	if err := h.tradeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Entry deleted", nil)
}
