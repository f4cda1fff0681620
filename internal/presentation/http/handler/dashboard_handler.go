package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailhub-api/internal/application/service"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailhub-api/internal/presentation/http/dto/response"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats serves GET /dashboard?days=&top=
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var req request.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid dashboard query: "+err.Error())
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), service.DashboardQuery{Days: req.Days, Top: req.Top})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
