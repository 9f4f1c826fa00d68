package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/presentation/http/dto/request"
	"mims-console/internal/presentation/http/dto/response"
	"mims-console/pkg/money"
)

// CatalogHandler handles product catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the catalog for the session's business. The response is
// marked stale when it comes from the cached snapshot.
func (h *CatalogHandler) List(c *gin.Context) {
	view, err := h.catalogService.Load(c.Request.Context(), SessionEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Catalog loaded"
	if view.Stale {
		message = "Backend unreachable, serving last-known catalog"
	}
	response.OK(c, message, view)
}

// Create adds a product to the catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.catalogService.AddProduct(c.Request.Context(), SessionEmail(c), &service.ProductInput{
		Name:     req.Name,
		Price:    money.FromFloat(req.Price),
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product added", nil)
}

// Update edits a product
func (h *CatalogHandler) Update(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.catalogService.UpdateProduct(c.Request.Context(), SessionEmail(c), c.Param("id"), &service.ProductInput{
		Name:     req.Name,
		Price:    money.FromFloat(req.Price),
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", nil)
}

// Delete removes a product
func (h *CatalogHandler) Delete(c *gin.Context) {
	err := h.catalogService.DeleteProduct(c.Request.Context(), SessionEmail(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted", nil)
}
