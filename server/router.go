package server

import (
	"time"

	"photo-frame/infrastructure/realtime"
	httpHandler "photo-frame/interfaces/http"
	"photo-frame/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	configHandler httpHandler.IConfigHandler,
	statusHandler httpHandler.IStatusHandler,
	frameHub *realtime.Hub,
	secretKey string,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(httpHandler.Templates())

	router.GET("/healthz", statusHandler.Healthz)

	// Browser flow: the session cookie correlates /google_auth with /oauth2callback
	web := router.Group("/")
	web.Use(middleware.Session(secretKey))
	web.GET("/", configHandler.Index)
	web.GET("/google_auth", configHandler.GoogleAuth)
	web.GET("/oauth2callback", configHandler.OAuth2Callback)

	api := router.Group("api")
	if len(corsOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	api.GET("/status", statusHandler.Status)
	if frameHub != nil {
		api.GET("/events", frameHub.Serve)
	}

	return router
}
