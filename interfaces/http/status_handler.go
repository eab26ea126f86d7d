package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-frame/usecase"
)

type IStatusHandler interface {
	Status(ctx *gin.Context)
	Healthz(ctx *gin.Context)
}

type StatusHandler struct {
	FrameUsecase usecase.IFrameUsecase
}

func NewStatusHandler(frameUsecase usecase.IFrameUsecase) IStatusHandler {
	return &StatusHandler{FrameUsecase: frameUsecase}
}

// Status handles GET /api/status
func (h *StatusHandler) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.FrameUsecase.Status())
}

// Healthz returns OK for health checks
func (h *StatusHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
