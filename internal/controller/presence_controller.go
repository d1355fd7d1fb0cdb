package controller

import (
	"bergerie_backend/internal/fidelity"
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type PresenceController struct {
	PresenceService *service.PresenceService
}

func NewPresenceController(presenceService *service.PresenceService) *PresenceController {
	return &PresenceController{PresenceService: presenceService}
}

// SavePresenceRequest marks one visitor present or absent at one occasion.
type SavePresenceRequest struct {
	Date     string `json:"date" binding:"required"`
	Category string `json:"category" binding:"required,oneof=culte bergerie"`
	Present  *bool  `json:"present" binding:"required"`
	Comment  string `json:"comment"`
}

// SavePresence godoc
// @Summary Pointer une présence
// @Description Un seul pointage par visiteur, date et catégorie, la ré-saisie remplace
// @Tags Présences
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   body body SavePresenceRequest true "Pointage"
// @Success 200 {object} util.Response{data=model.PresenceRecord}
// @Failure 400 {object} util.Response "Date invalide"
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id}/presence [put]
func (c *PresenceController) SavePresence(ctx *gin.Context) {
	var req SavePresenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.PresenceService.Save(
		util.MustParseUint(ctx.Param("id")),
		req.Date,
		model.PresenceCategory(req.Category),
		*req.Present,
		req.Comment,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDate):
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

// GetPresences godoc
// @Summary Présences d'un visiteur
// @Description Pointages culte et bergerie, les plus récents en premier
// @Tags Présences
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Success 200 {object} util.Response{data=service.VisitorPresences}
// @Router /api/visitors/{id}/presence [get]
func (c *PresenceController) GetPresences(ctx *gin.Context) {
	presences, err := c.PresenceService.ListByVisitor(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, presences)
}

// GetFidelityReport godoc
// @Summary Taux de fidélité d'une cohorte
// @Description Agrège une bergerie ou une ville entière, avec filtre optionnel sur une date
// @Tags Présences
// @Produce  json
// @Security BearerAuth
// @Param   cityId query int false "Ville, 0 pour toutes"
// @Param   bergerieId query int false "Bergerie, prioritaire sur la ville"
// @Param   from query string false "Début de fenêtre YYYY-MM-DD"
// @Param   to query string false "Fin de fenêtre YYYY-MM-DD"
// @Param   date query string false "Ne retenir que les sujets pointés ce jour"
// @Param   filter query string false "all, present ou absent" default(all)
// @Success 200 {object} util.Response{data=service.FidelityReport}
// @Failure 400 {object} util.Response "Filtre invalide"
// @Router /api/presence/fidelity [get]
func (c *PresenceController) GetFidelityReport(ctx *gin.Context) {
	var from, to time.Time
	if v, err := util.ParseDate(ctx.Query("from")); err == nil {
		from = v
	}
	if v, err := util.ParseDate(ctx.Query("to")); err == nil {
		to = v
	}

	filter := fidelity.PresenceFilter(ctx.DefaultQuery("filter", string(fidelity.FilterAll)))
	if filter != fidelity.FilterAll && filter != fidelity.FilterPresent && filter != fidelity.FilterAbsent {
		util.BadRequest(ctx, "filter must be all, present or absent")
		return
	}

	report, err := c.PresenceService.FidelityReport(
		util.MustParseUint(ctx.Query("cityId")),
		util.MustParseUint(ctx.Query("bergerieId")),
		from, to,
		ctx.Query("date"),
		filter,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
