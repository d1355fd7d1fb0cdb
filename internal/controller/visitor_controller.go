package controller

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type VisitorController struct {
	VisitorService *service.VisitorService
	StorageService *service.StorageService
}

func NewVisitorController(visitorService *service.VisitorService, storageService *service.StorageService) *VisitorController {
	return &VisitorController{
		VisitorService: visitorService,
		StorageService: storageService,
	}
}

// GetVisitors godoc
// @Summary Lister les visiteurs
// @Description Liste paginée des visiteurs avec filtres ville, bergerie, statut et recherche
// @Tags Visiteurs
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Param   cityId query int false "Filtre ville"
// @Param   bergerieId query int false "Filtre bergerie"
// @Param   status query string false "visiteur, nouveau_converti, disciple ou membre"
// @Param   search query string false "Nom, téléphone ou email"
// @Param   from query string false "Date d'arrivée min YYYY-MM-DD"
// @Param   to query string false "Date d'arrivée max YYYY-MM-DD"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/visitors [get]
func (c *VisitorController) GetVisitors(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.VisitorFilter{
		CityID:     util.MustParseUint(ctx.Query("cityId")),
		BergerieID: util.MustParseUint(ctx.Query("bergerieId")),
		Status:     model.VisitorStatus(ctx.Query("status")),
		Search:     ctx.Query("search"),
	}
	if from, err := util.ParseDate(ctx.Query("from")); err == nil {
		filter.StartDate = from
	}
	if to, err := util.ParseDate(ctx.Query("to")); err == nil {
		filter.EndDate = to
	}

	visitors, total, err := c.VisitorService.GetVisitors(page, limit, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  visitors,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetVisitor godoc
// @Summary Fiche d'un visiteur
// @Tags Visiteurs
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Success 200 {object} util.Response{data=model.Visitor}
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id} [get]
func (c *VisitorController) GetVisitor(ctx *gin.Context) {
	visitor, err := c.VisitorService.GetVisitorByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, visitor)
}

// VisitorRequest carries the editable visitor fields.
// swagger:model VisitorRequest
type VisitorRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CityID      uint   `json:"cityId" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=visiteur nouveau_converti disciple membre"`
	InvitedBy   string `json:"invitedBy"`
	ArrivalDate string `json:"arrivalDate"`
	Comment     string `json:"comment"`
}

func (r *VisitorRequest) toModel() *model.Visitor {
	visitor := &model.Visitor{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		CityID:    r.CityID,
		Status:    model.VisitorStatus(r.Status),
		InvitedBy: r.InvitedBy,
		Comment:   r.Comment,
	}
	if arrival, err := util.ParseDate(r.ArrivalDate); err == nil {
		visitor.ArrivalDate = arrival
	} else {
		visitor.ArrivalDate = time.Now()
	}
	return visitor
}

// CreateVisitor godoc
// @Summary Enregistrer un visiteur
// @Description Saisie manuelle par un berger, source "manuelle"
// @Tags Visiteurs
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body VisitorRequest true "Fiche visiteur"
// @Success 201 {object} util.Response{data=model.Visitor}
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Router /api/visitors [post]
func (c *VisitorController) CreateVisitor(ctx *gin.Context) {
	var req VisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	visitor := req.toModel()
	if err := c.VisitorService.CreateVisitor(visitor); err != nil {
		if errors.Is(err, util.ErrCityNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, visitor)
}

// UpdateVisitor godoc
// @Summary Modifier un visiteur
// @Tags Visiteurs
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   body body VisitorRequest true "Fiche visiteur"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id} [put]
func (c *VisitorController) UpdateVisitor(ctx *gin.Context) {
	var req VisitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	visitor := req.toModel()
	visitor.ID = util.MustParseUint(ctx.Param("id"))

	if err := c.VisitorService.UpdateVisitor(visitor); err != nil {
		if errors.Is(err, util.ErrVisitorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// DeleteVisitor godoc
// @Summary Supprimer un visiteur
// @Tags Visiteurs
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id} [delete]
func (c *VisitorController) DeleteVisitor(ctx *gin.Context) {
	if err := c.VisitorService.DeleteVisitor(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// ManualStatusRequest sets or clears the displayed status override.
type ManualStatusRequest struct {
	Label string `json:"label"`
}

// SetManualStatus godoc
// @Summary Forcer le statut affiché
// @Description Un libellé vide efface le forçage et restaure le niveau calculé
// @Tags Visiteurs
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   body body ManualStatusRequest true "Libellé ou vide"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Visiteur introuvable"
// @Router /api/visitors/{id}/status [put]
func (c *VisitorController) SetManualStatus(ctx *gin.Context) {
	var req ManualStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VisitorService.SetManualStatus(util.MustParseUint(ctx.Param("id")), req.Label); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// AssignBergerieRequest moves a visitor into a bergerie.
type AssignBergerieRequest struct {
	BergerieID uint `json:"bergerieId"`
}

// AssignBergerie godoc
// @Summary Affecter à une bergerie
// @Description bergerieId 0 retire le visiteur de sa bergerie
// @Tags Visiteurs
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   body body AssignBergerieRequest true "Bergerie cible"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Visiteur ou bergerie introuvable"
// @Router /api/visitors/{id}/bergerie [put]
func (c *VisitorController) AssignBergerie(ctx *gin.Context) {
	var req AssignBergerieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VisitorService.AssignBergerie(util.MustParseUint(ctx.Param("id")), req.BergerieID); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// UploadPhoto godoc
// @Summary Téléverser une photo
// @Tags Visiteurs
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID visiteur"
// @Param   photo formData file true "Image"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Fichier invalide"
// @Router /api/visitors/{id}/photo [post]
func (c *VisitorController) UploadPhoto(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if _, err := c.VisitorService.GetVisitorByID(id); err != nil {
		util.NotFound(ctx)
		return
	}

	header, err := ctx.FormFile("photo")
	if err != nil {
		util.BadRequest(ctx, "photo file is required")
		return
	}

	url, err := c.StorageService.SavePhoto(ctx.Request.Context(), header)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VisitorService.SetPhoto(id, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
