package controllers

import (
	"github.com/gin-gonic/gin"

	"hotel-manager/response"
	"hotel-manager/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) DashboardController {
	return DashboardController{dashboard: dashboard}
}

// GetDashboard godoc
// @Summary   Occupancy and reservation counters, cached for a few minutes
// @Tags      dashboard
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  response.Response{data=dto.DashboardSummary}
// @Router    /dashboard [get]
func (d DashboardController) GetDashboard(c *gin.Context) {
	summary, err := d.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}
