package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/domain/entity"
	"mims-console/internal/presentation/http/dto/request"
	"mims-console/internal/presentation/http/dto/response"
)

// PreferencesHandler handles preferences HTTP requests
type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// Get returns the stored preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.preferencesService.Get()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Preferences", prefs)
}

// Save persists the preferences
func (h *PreferencesHandler) Save(c *gin.Context) {
	var req request.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.preferencesService.Save(entity.Preferences{
		Theme:            req.Theme,
		BusinessCategory: req.BusinessCategory,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preferences saved", nil)
}
