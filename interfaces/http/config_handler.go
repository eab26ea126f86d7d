package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-frame/infrastructure/configuration"
	"photo-frame/infrastructure/logger"
	"photo-frame/interfaces/middleware"
	"photo-frame/usecase"
)

// IConfigHandler serves the configuration page the QR code points at
type IConfigHandler interface {
	Index(ctx *gin.Context)
	GoogleAuth(ctx *gin.Context)
	OAuth2Callback(ctx *gin.Context)
}

type ConfigHandler struct {
	AuthUsecase usecase.IAuthUsecase
}

func NewConfigHandler(authUsecase usecase.IAuthUsecase) IConfigHandler {
	return &ConfigHandler{AuthUsecase: authUsecase}
}

// Index handles GET /
func (h *ConfigHandler) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Configured": h.AuthUsecase.IsConfigured(),
	})
}

// GoogleAuth handles GET /google_auth
func (h *ConfigHandler) GoogleAuth(ctx *gin.Context) {
	authURL, err := h.AuthUsecase.BeginAuthorization(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to begin authorization")
		if errors.Is(err, configuration.ErrClientSecretMissing) {
			ctx.String(http.StatusInternalServerError, "Google client secret file is missing on the frame.")
			return
		}
		ctx.String(http.StatusInternalServerError, "Failed to start authorization.")
		return
	}
	ctx.Redirect(http.StatusFound, authURL)
}

// OAuth2Callback handles GET /oauth2callback
func (h *ConfigHandler) OAuth2Callback(ctx *gin.Context) {
	err := h.AuthUsecase.CompleteAuthorization(ctx.Request.Context(), middleware.SessionID(ctx), ctx.Request.URL.Query())
	switch {
	case err == nil:
		ctx.Redirect(http.StatusFound, "/")
	case errors.Is(err, usecase.ErrSessionExpired):
		logger.GetLogger().Warn("Authorization callback without pending state")
		ctx.String(http.StatusBadRequest, "Session expired. Please restart the authorization flow.")
	case errors.Is(err, usecase.ErrStateMismatch), errors.Is(err, usecase.ErrAuthorizationDenied):
		logger.GetLogger().WithField("error", err).Warn("Authorization callback rejected")
		ctx.String(http.StatusBadRequest, "Authorization was not completed. Please restart the authorization flow.")
	default:
		logger.GetLogger().WithField("error", err).Error("Failed to complete authorization")
		ctx.String(http.StatusInternalServerError, "Failed to save authorization.")
	}
}
