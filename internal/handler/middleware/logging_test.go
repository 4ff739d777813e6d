//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-booking/internal/handler/httperr"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := middleware.NewLogger(config.NewTestConfig().Log)

	r := gin.New()
	r.Use(middleware.CustomRecovery(), logger.LoggingMiddleware(), middleware.ErrorHandler())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/deferred", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusTeapot}
		resp.Error.Message = "short and stout"
		_ = c.Error(&gin.Error{Err: assert.AnError, Type: gin.ErrorTypePublic, Meta: resp})
	})
	return r
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	r := newLoggedRouter()

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
		require.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get(middleware.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(middleware.HeaderRequestID, strings.Repeat("x", 65))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, strings.Repeat("x", 65), w.Header().Get(middleware.HeaderRequestID))
	})
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := newLoggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deferred", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Body.String(), "short and stout")
}
