package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/logistics-api/internal/application/service"
	"github.com/sangkips/logistics-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", gin.H{
		"active_staff":        stats.ActiveStaff,
		"customers":           stats.Customers,
		"shipments":           stats.Shipments,
		"shipments_by_status": stats.ShipmentsByState,
		"receipts":            stats.Receipts,
		"receipts_total":      stats.ReceiptsTotal.StringFixed(2),
	})
}
