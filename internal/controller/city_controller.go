package controller

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/repository"
	"bergerie_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CityController struct {
	CityRepo *repository.CityRepository
}

func NewCityController(cityRepo *repository.CityRepository) *CityController {
	return &CityController{CityRepo: cityRepo}
}

// GetCities godoc
// @Summary Lister les villes
// @Description Liste les villes actives, ou toutes avec all=true
// @Tags Villes
// @Produce  json
// @Param   all query bool false "Inclure les villes désactivées"
// @Success 200 {object} util.Response{data=[]model.City}
// @Router /api/public/cities [get]
func (c *CityController) GetCities(ctx *gin.Context) {
	cities, err := c.CityRepo.FindAll(ctx.Query("all") != "true")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cities)
}

// CityRequest carries the editable city fields.
type CityRequest struct {
	Name    string `json:"name" binding:"required"`
	Enabled bool   `json:"enabled"`
}

// CreateCity godoc
// @Summary Créer une ville
// @Tags Villes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CityRequest true "Fiche ville"
// @Success 201 {object} util.Response{data=model.City}
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Router /api/admin/cities [post]
func (c *CityController) CreateCity(ctx *gin.Context) {
	var req CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	city := &model.City{Name: req.Name, Enabled: req.Enabled}
	if err := c.CityRepo.Create(city); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, city)
}

// UpdateCity godoc
// @Summary Modifier une ville
// @Tags Villes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID ville"
// @Param   body body CityRequest true "Fiche ville"
// @Success 200 {object} util.Response{data=model.City}
// @Failure 404 {object} util.Response "Ville introuvable"
// @Router /api/admin/cities/{id} [put]
func (c *CityController) UpdateCity(ctx *gin.Context) {
	var req CityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	city, err := c.CityRepo.FindByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	city.Name = req.Name
	city.Enabled = req.Enabled
	if err := c.CityRepo.Update(city); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, city)
}
