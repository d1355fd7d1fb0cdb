package controller

import (
	"bergerie_backend/internal/service"
	"bergerie_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	RegistrationService *service.RegistrationService
}

func NewRegistrationController(registrationService *service.RegistrationService) *RegistrationController {
	return &RegistrationController{RegistrationService: registrationService}
}

// StartSessionRequest opens a sharable self-registration link.
type StartSessionRequest struct {
	CityID    uint   `json:"cityId" binding:"required"`
	InvitedBy string `json:"invitedBy" binding:"required"`
}

// StartSession godoc
// @Summary Ouvrir une session d'inscription
// @Description Le berger génère un lien public portant sa ville et son nom
// @Tags Inscription publique
// @Accept  json
// @Produce  json
// @Param   body body StartSessionRequest true "Contexte de l'invitation"
// @Success 201 {object} util.Response{data=object} "Jeton de session"
// @Failure 400 {object} util.Response "Ville inconnue"
// @Router /api/public/registration/session [post]
func (c *RegistrationController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, guest, err := c.RegistrationService.StartSession(ctx.Request.Context(), req.CityID, req.InvitedBy)
	if err != nil {
		if errors.Is(err, util.ErrCityNotFound) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"token": token, "guest": guest})
}

// GetSession godoc
// @Summary Contexte d'une session d'inscription
// @Description Le formulaire public récupère la ville et l'invitant avant affichage
// @Tags Inscription publique
// @Produce  json
// @Param   token path string true "Jeton de session"
// @Success 200 {object} util.Response{data=service.GuestContext}
// @Failure 404 {object} util.Response "Session expirée ou inconnue"
// @Router /api/public/registration/session/{token} [get]
func (c *RegistrationController) GetSession(ctx *gin.Context) {
	guest, err := c.RegistrationService.GetSession(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, guest)
}

// Submit godoc
// @Summary Soumettre le formulaire public
// @Description Crée la fiche visiteur avec la source "formulaire" et consomme la session
// @Tags Inscription publique
// @Accept  json
// @Produce  json
// @Param   token path string true "Jeton de session"
// @Param   body body service.GuestSubmission true "Coordonnées du visiteur"
// @Success 201 {object} util.Response{data=model.Visitor}
// @Failure 404 {object} util.Response "Session expirée ou inconnue"
// @Router /api/public/registration/session/{token}/submit [post]
func (c *RegistrationController) Submit(ctx *gin.Context) {
	var submission service.GuestSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	visitor, err := c.RegistrationService.Submit(ctx.Request.Context(), ctx.Param("token"), &submission)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, visitor)
}
