package controller

import (
	"bergerie_backend/internal/scoring"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type KPIController struct {
	KPIService *service.KPIService
	Scoring    *scoring.Table
}

func NewKPIController(kpiService *service.KPIService, table *scoring.Table) *KPIController {
	return &KPIController{KPIService: kpiService, Scoring: table}
}

// GetConfig godoc
// @Summary Grille des indicateurs
// @Description Indicateurs pondérés, options et paliers de niveau utilisés par le calcul
// @Tags KPI
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=scoring.Config}
// @Router /api/kpi/config [get]
func (c *KPIController) GetConfig(ctx *gin.Context) {
	util.Success(ctx, c.Scoring.Current())
}

// ExportConfig godoc
// @Summary Exporter la grille de scoring
// @Description Renvoie la grille courante au format YAML, prête à redéployer
// @Tags KPI
// @Produce  plain
// @Security BearerAuth
// @Success 200 {string} string "Grille YAML"
// @Router /api/admin/scoring/export [get]
func (c *KPIController) ExportConfig(ctx *gin.Context) {
	out, err := c.Scoring.Current().Export()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename=scoring.yaml")
	ctx.Data(http.StatusOK, "application/x-yaml", out)
}

// PreviewRequest carries raw selections to score without persisting.
type PreviewRequest struct {
	Values map[string]int `json:"values" binding:"required"`
}

// Preview godoc
// @Summary Prévisualiser un score
// @Description Calcule score et niveau à partir des sélections, sans enregistrement
// @Tags KPI
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PreviewRequest true "Sélections par indicateur"
// @Success 200 {object} util.Response{data=service.KPIPreview}
// @Router /api/kpi/preview [post]
func (c *KPIController) Preview(ctx *gin.Context) {
	var req PreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.KPIService.Preview(req.Values))
}

// GetRecord godoc
// @Summary Saisie d'un mois
// @Description Retourne la saisie du visiteur pour la période, ou une fiche vierge à zéro
// @Tags KPI
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   period path string true "Période YYYY-MM"
// @Success 200 {object} util.Response{data=model.KPIRecord}
// @Failure 400 {object} util.Response "Période invalide"
// @Router /api/visitors/{id}/kpi/{period} [get]
func (c *KPIController) GetRecord(ctx *gin.Context) {
	record, err := c.KPIService.GetRecord(util.MustParseUint(ctx.Param("id")), ctx.Param("period"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidPeriod) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, record)
}

// SaveRecordRequest persists one month of indicator selections.
type SaveRecordRequest struct {
	Values  map[string]int `json:"values" binding:"required"`
	Comment string         `json:"comment"`
}

// SaveRecord godoc
// @Summary Enregistrer la saisie d'un mois
// @Description Une seule fiche par visiteur et par période, la ré-saisie remplace la précédente
// @Tags KPI
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   period path string true "Période YYYY-MM"
// @Param   body body SaveRecordRequest true "Saisie du mois"
// @Success 200 {object} util.Response{data=model.KPIRecord}
// @Failure 400 {object} util.Response "Période invalide"
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id}/kpi/{period} [put]
func (c *KPIController) SaveRecord(ctx *gin.Context) {
	var req SaveRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.KPIService.Save(util.MustParseUint(ctx.Param("id")), ctx.Param("period"), req.Values, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPeriod):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrVisitorNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, record)
}

// GetHistory godoc
// @Summary Historique des saisies
// @Description Toutes les périodes saisies du visiteur, de la plus ancienne à la plus récente
// @Tags KPI
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Success 200 {object} util.Response{data=[]model.KPIRecord}
// @Router /api/visitors/{id}/kpi [get]
func (c *KPIController) GetHistory(ctx *gin.Context) {
	records, err := c.KPIService.History(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetSummary godoc
// @Summary Synthèse de progression
// @Description Score moyen, niveau moyen et statut affiché (forçage manuel prioritaire)
// @Tags KPI
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Success 200 {object} util.Response{data=service.KPISummary}
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id}/kpi-summary [get]
func (c *KPIController) GetSummary(ctx *gin.Context) {
	summary, err := c.KPIService.Summary(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrVisitorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, summary)
}
