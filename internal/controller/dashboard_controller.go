package controller

import (
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetSummary godoc
// @Summary Tableau de bord
// @Description Effectifs par statut, bergeries, taux de fidélité et derniers arrivés
// @Tags Tableau de bord
// @Produce  json
// @Security BearerAuth
// @Param   cityId query int false "Ville, 0 pour toutes"
// @Success 200 {object} util.Response{data=service.DashboardSummary}
// @Router /api/dashboard [get]
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	summary, err := c.DashboardService.GetSummary(ctx.Request.Context(), util.MustParseUint(ctx.Query("cityId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
