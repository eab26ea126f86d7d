package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"

	"photo-frame/infrastructure/logger"
	"photo-frame/infrastructure/utils"
)

const (
	SessionCookieName = "photo_frame_session"
	SessionContextKey = "session_id"
	sessionTTL        = 24 * time.Hour
)

// Session gives every browser a stable identifier carried in a signed cookie.
// A missing, tampered or expired cookie is replaced with a fresh session.
func Session(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID := ""
		if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
			if id, err := utils.ParseSessionToken(cookie, secretKey); err == nil {
				sessionID = id
			} else {
				logger.GetLogger().WithField("error", err).Debug("Discarding invalid session cookie")
			}
		}

		if sessionID == "" {
			sessionID = ksuid.New().String()
			token, err := utils.GenerateSessionToken(sessionID, secretKey, sessionTTL)
			if err != nil {
				logger.GetLogger().WithField("error", err).Error("Failed to sign session cookie")
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
				return
			}
			// Lax so the cookie survives the top-level redirect back from the consent page
			ctx.SetSameSite(http.SameSiteLaxMode)
			ctx.SetCookie(SessionCookieName, token, int(sessionTTL.Seconds()), "/", "", false, true)
		}

		ctx.Set(SessionContextKey, sessionID)
		ctx.Next()
	}
}

// SessionID returns the identifier set by Session
func SessionID(ctx *gin.Context) string {
	return ctx.GetString(SessionContextKey)
}
