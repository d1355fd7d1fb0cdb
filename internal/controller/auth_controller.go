package controller

import (
	"bergerie_backend/internal/model"
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=berger responsable admin"`
	CityID   *uint  `json:"cityId"`
	Phone    string `json:"phone"`
}

// Register godoc
// @Summary Créer un compte berger
// @Description Enregistre un nouvel utilisateur avec le rôle fourni
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Informations du compte"
// @Success 201 {object} util.Response{data=object} "Compte créé"
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Failure 409 {object} util.Response "Email déjà enregistré"
// @Failure 500 {object} util.Response "Erreur interne"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
		CityID:   req.CityID,
		Phone:    req.Phone,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, util.ErrEmailRegistered.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Connexion
// @Description Authentifie un utilisateur et retourne un jeton JWT
// @Tags Authentification
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Identifiants"
// @Success 200 {object} util.Response{data=object} "Jeton délivré"
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Failure 401 {object} util.Response "Identifiants invalides"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, err.Error())
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// Me godoc
// @Summary Profil courant
// @Description Retourne l'utilisateur associé au jeton
// @Tags Authentification
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "Non authentifié"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
