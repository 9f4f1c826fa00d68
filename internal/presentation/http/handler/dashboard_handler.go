package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/presentation/http/dto/response"
)

// DashboardHandler handles the overview HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the aggregated overview for the session's business
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context(), SessionEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard", summary)
}
