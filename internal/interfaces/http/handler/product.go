package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/posadmin/backend/internal/application/catalog"
	"github.com/posadmin/backend/internal/domain/catalog"
	"github.com/posadmin/backend/internal/interfaces/http/dto"
)

// ProductHandler serves the product catalog admin endpoints
type ProductHandler struct {
	BaseHandler
	service *appcatalog.Service
}

// NewProductHandler creates a product handler
func NewProductHandler(service *appcatalog.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	{
		products.GET("", h.List)
		products.PUT("/:id", h.Update)
	}
}

// List returns one page of the product listing
// GET /api/v1/catalog/products?search=&page=&page_size=
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	page, total, err := h.service.List(c.Request.Context(), appcatalog.ListFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page, total, req.Page, req.PageSize)
}

// Update pushes a product edit upstream
// PUT /api/v1/catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		h.BadRequest(c, "Product id is required")
		return
	}

	var update catalog.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	detail, err := h.service.Update(c.Request.Context(), productID, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}
