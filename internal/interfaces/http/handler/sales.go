package handler

import (
	"github.com/gin-gonic/gin"

	appsales "github.com/posadmin/backend/internal/application/sales"
)

// SalesHandler serves the read-only sales listing used by the return
// form's sale picker
type SalesHandler struct {
	BaseHandler
	service *appsales.Service
}

// NewSalesHandler creates a sales handler
func NewSalesHandler(service *appsales.Service) *SalesHandler {
	return &SalesHandler{service: service}
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trade/sales", h.List)
}

// List returns the sales collection narrowed by channel, payment method
// and invoice search
// GET /api/v1/trade/sales?channel=&payment_method=&search=
func (h *SalesHandler) List(c *gin.Context) {
	filter := appsales.ListFilter{
		Channel:       c.Query("channel"),
		PaymentMethod: c.Query("payment_method"),
		Search:        c.Query("search"),
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
