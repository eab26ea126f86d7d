package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-frame/domain/model"
	httpHandler "photo-frame/interfaces/http"
)

type stubFrame struct {
	status model.FrameStatus
}

func (s *stubFrame) ShowConfigURL(string) error                 { return nil }
func (s *stubFrame) WaitForAuthorization(context.Context) error { return nil }
func (s *stubFrame) RunOnce(context.Context)                    {}
func (s *stubFrame) Run(context.Context) error                  { return nil }
func (s *stubFrame) Status() model.FrameStatus                  { return s.status }

func TestStatusHandler_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)
	shown := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	h := httpHandler.NewStatusHandler(&stubFrame{status: model.FrameStatus{
		Configured:      true,
		ConfigURL:       "http://192.168.1.5:5000",
		LastPhoto:       "photos/a.jpg",
		LastDisplayedAt: &shown,
	}})
	router := gin.New()
	router.GET("/api/status", h.Status)
	router.GET("/healthz", h.Healthz)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, true, got["configured"])
	assert.Equal(t, false, got["panel_present"])
	assert.Equal(t, "photos/a.jpg", got["last_photo"])
	assert.Equal(t, "2026-10-15T08:00:00Z", got["last_displayed_at"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
