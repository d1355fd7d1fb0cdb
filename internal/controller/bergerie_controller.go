package controller

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type BergerieController struct {
	BergerieService *service.BergerieService
}

func NewBergerieController(bergerieService *service.BergerieService) *BergerieController {
	return &BergerieController{BergerieService: bergerieService}
}

// GetBergeries godoc
// @Summary Lister les bergeries
// @Description Filtres optionnels par ville et par cohorte (mois d'ouverture YYYY-MM)
// @Tags Bergeries
// @Produce  json
// @Security BearerAuth
// @Param   cityId query int false "Filtre ville"
// @Param   cohort query string false "Cohorte YYYY-MM"
// @Success 200 {object} util.Response{data=[]model.Bergerie}
// @Router /api/bergeries [get]
func (c *BergerieController) GetBergeries(ctx *gin.Context) {
	bergeries, err := c.BergerieService.GetBergeries(util.MustParseUint(ctx.Query("cityId")), ctx.Query("cohort"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bergeries)
}

// GetBergerie godoc
// @Summary Détail d'une bergerie
// @Tags Bergeries
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID bergerie"
// @Success 200 {object} util.Response{data=model.Bergerie}
// @Failure 404 {object} util.Response "Bergerie introuvable"
// @Router /api/bergeries/{id} [get]
func (c *BergerieController) GetBergerie(ctx *gin.Context) {
	bergerie, err := c.BergerieService.GetBergerieByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, bergerie)
}

// BergerieRequest carries the editable bergerie fields.
// swagger:model BergerieRequest
type BergerieRequest struct {
	Name       string `json:"name" binding:"required"`
	CityID     uint   `json:"cityId" binding:"required"`
	Cohort     string `json:"cohort" binding:"required"`
	LeaderID   *uint  `json:"leaderId"`
	MeetingDay string `json:"meetingDay"`
	Location   string `json:"location"`
	Active     bool   `json:"active"`
}

// CreateBergerie godoc
// @Summary Créer une bergerie
// @Tags Bergeries
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body BergerieRequest true "Fiche bergerie"
// @Success 201 {object} util.Response{data=model.Bergerie}
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Router /api/bergeries [post]
func (c *BergerieController) CreateBergerie(ctx *gin.Context) {
	var req BergerieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !util.ValidPeriod(req.Cohort) {
		util.BadRequest(ctx, util.ErrInvalidPeriod.Error())
		return
	}

	bergerie := &model.Bergerie{
		Name:       req.Name,
		CityID:     req.CityID,
		Cohort:     req.Cohort,
		LeaderID:   req.LeaderID,
		MeetingDay: req.MeetingDay,
		Location:   req.Location,
		Active:     req.Active,
	}
	if err := c.BergerieService.CreateBergerie(bergerie); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, bergerie)
}

// UpdateBergerie godoc
// @Summary Modifier une bergerie
// @Tags Bergeries
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID bergerie"
// @Param   body body BergerieRequest true "Fiche bergerie"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Bergerie introuvable"
// @Router /api/bergeries/{id} [put]
func (c *BergerieController) UpdateBergerie(ctx *gin.Context) {
	var req BergerieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !util.ValidPeriod(req.Cohort) {
		util.BadRequest(ctx, util.ErrInvalidPeriod.Error())
		return
	}

	bergerie := &model.Bergerie{
		Name:       req.Name,
		CityID:     req.CityID,
		Cohort:     req.Cohort,
		LeaderID:   req.LeaderID,
		MeetingDay: req.MeetingDay,
		Location:   req.Location,
		Active:     req.Active,
	}
	bergerie.ID = util.MustParseUint(ctx.Param("id"))

	if err := c.BergerieService.UpdateBergerie(bergerie); err != nil {
		if errors.Is(err, util.ErrBergerieNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteBergerie godoc
// @Summary Supprimer une bergerie
// @Tags Bergeries
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID bergerie"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Bergerie introuvable"
// @Router /api/bergeries/{id} [delete]
func (c *BergerieController) DeleteBergerie(ctx *gin.Context) {
	if err := c.BergerieService.DeleteBergerie(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// GetMembers godoc
// @Summary Membres d'une bergerie
// @Tags Bergeries
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID bergerie"
// @Success 200 {object} util.Response{data=[]model.Visitor}
// @Failure 404 {object} util.Response "Bergerie introuvable"
// @Router /api/bergeries/{id}/members [get]
func (c *BergerieController) GetMembers(ctx *gin.Context) {
	members, err := c.BergerieService.GetMembers(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, members)
}

// GetStats godoc
// @Summary Statistiques d'une bergerie
// @Description Effectif, taux de fidélité et score moyen du dernier mois saisi
// @Tags Bergeries
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID bergerie"
// @Success 200 {object} util.Response{data=service.BergerieStats}
// @Failure 404 {object} util.Response "Bergerie introuvable"
// @Router /api/bergeries/{id}/stats [get]
func (c *BergerieController) GetStats(ctx *gin.Context) {
	stats, err := c.BergerieService.GetStats(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrBergerieNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}
