package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/domain/entity"
	"mims-console/internal/presentation/http/dto/request"
	"mims-console/internal/presentation/http/dto/response"
	"mims-console/pkg/money"
)

// BillingHandler handles the draft order and bill HTTP requests
type BillingHandler struct {
	orderService *service.OrderService
	billService  *service.BillService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(orderService *service.OrderService, billService *service.BillService) *BillingHandler {
	return &BillingHandler{
		orderService: orderService,
		billService:  billService,
	}
}

// GetDraft returns the current draft order
func (h *BillingHandler) GetDraft(c *gin.Context) {
	response.OK(c, "Draft order", h.orderService.Draft(SessionEmail(c)))
}

// AddLine adds an item to the draft order
func (h *BillingHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.AddLineInput{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}
	if req.UnitPrice != nil {
		price := money.FromFloat(*req.UnitPrice)
		input.UnitPrice = &price
	}

	draft, err := h.orderService.AddLine(c.Request.Context(), SessionEmail(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", draft)
}

// RemoveLine removes an item from the draft order
func (h *BillingHandler) RemoveLine(c *gin.Context) {
	draft := h.orderService.RemoveLine(SessionEmail(c), c.Param("item_id"))
	response.OK(c, "Item removed", draft)
}

// SetCustomer replaces the draft's customer contact fields
func (h *BillingHandler) SetCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft := h.orderService.SetCustomer(SessionEmail(c), entity.Customer{
		Name:   req.Name,
		Mobile: req.Mobile,
		Email:  req.Email,
	})
	response.OK(c, "Customer updated", draft)
}

// ResetDraft discards the draft order
func (h *BillingHandler) ResetDraft(c *gin.Context) {
	h.orderService.Reset(SessionEmail(c))
	response.OK(c, "Draft cleared", nil)
}

// SaveBill persists the draft as a bill
func (h *BillingHandler) SaveBill(c *gin.Context) {
	var req request.SaveBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.SaveBillInput{}
	if req.BillDate != "" {
		billDate, err := time.Parse(time.RFC3339, req.BillDate)
		if err != nil {
			response.BadRequest(c, "bill_date must be RFC 3339")
			return
		}
		input.BillDate = billDate
	}

	bill, err := h.billService.SaveBill(c.Request.Context(), SessionEmail(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill saved", bill)
}

// ListBills returns the bill history, newest first, optionally filtered
// by a customer name query
func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.billService.SearchBills(c.Request.Context(), SessionEmail(c), c.Query("customer"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill history", bills)
}

// RecentBills returns the newest bills for the dashboard
func (h *BillingHandler) RecentBills(c *gin.Context) {
	bills, err := h.billService.RecentBills(c.Request.Context(), SessionEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent bills", bills)
}

// GetBill returns one bill by id
func (h *BillingHandler) GetBill(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), SessionEmail(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill", bill)
}
