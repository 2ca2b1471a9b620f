package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/posadmin/backend/internal/application/report"
)

// ReportHandler serves the dashboard statistics
type ReportHandler struct {
	BaseHandler
	service *appreport.Service
}

// NewReportHandler creates a report handler
func NewReportHandler(service *appreport.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/report/dashboard", h.Dashboard)
}

// Dashboard returns the admin landing page summary
// GET /api/v1/report/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
