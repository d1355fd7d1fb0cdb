package controller

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetUsers godoc
// @Summary Lister les comptes
// @Description Liste paginée des comptes avec filtres rôle, statut, ville et recherche
// @Tags Administration
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Taille de page" default(20)
// @Param   role query string false "Filtre rôle"
// @Param   status query string false "online, offline ou disabled"
// @Param   cityId query int false "Filtre ville"
// @Param   search query string false "Nom ou email"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response "Accès refusé"
// @Router /api/admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := service.UserFilter{
		Role:   ctx.Query("role"),
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
		CityID: util.MustParseUint(ctx.Query("cityId")),
	}

	users, total, err := c.UserService.GetUsers(page, limit, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: int64(total),
		Page:  page,
		Limit: limit,
	})
}

// GetUser godoc
// @Summary Détail d'un compte
// @Tags Administration
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID utilisateur"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "Utilisateur introuvable"
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// UpdateUserRequest defines the editable account fields.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=berger responsable admin"`
	CityID   *uint  `json:"cityId"`
	Phone    string `json:"phone"`
	Disabled bool   `json:"disabled"`
}

// UpdateUser godoc
// @Summary Modifier un compte
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID utilisateur"
// @Param   body body UpdateUserRequest true "Champs modifiables"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Utilisateur introuvable"
// @Router /api/admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.UserRole(req.Role),
		CityID:   req.CityID,
		Phone:    req.Phone,
		Disabled: req.Disabled,
	}
	user.ID = util.MustParseUint(ctx.Param("id"))

	if err := c.UserService.UpdateUser(user); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// ResetPassword godoc
// @Summary Réinitialiser un mot de passe
// @Description Retourne un mot de passe temporaire en clair à transmettre à l'utilisateur
// @Tags Administration
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID utilisateur"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "Utilisateur introuvable"
// @Router /api/admin/users/{id}/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	tempPassword, err := c.UserService.ResetPassword(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"tempPassword": tempPassword})
}

// DisableUserRequest toggles an account.
type DisableUserRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// DisableUser godoc
// @Summary Activer ou désactiver un compte
// @Tags Administration
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID utilisateur"
// @Param   body body DisableUserRequest true "Nouvel état"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Utilisateur introuvable"
// @Router /api/admin/users/{id}/disable [post]
func (c *UserController) DisableUser(ctx *gin.Context) {
	var req DisableUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DisableUser(util.MustParseUint(ctx.Param("id")), *req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary Supprimer un compte
// @Tags Administration
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "ID utilisateur"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Utilisateur introuvable"
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.DeleteUser(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
