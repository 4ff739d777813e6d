//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("records a public error carrying the response", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		httperr.AbortWithError(c, http.StatusConflict, assert.AnError, "Time slot is already booked", gin.H{"conflictingBookingId": "x"})

		require.Len(t, c.Errors, 1)
		recorded := c.Errors[0]
		assert.True(t, recorded.IsType(gin.ErrorTypePublic))
		assert.ErrorIs(t, recorded.Err, assert.AnError)

		resp, ok := recorded.Meta.(httperr.Response)
		require.True(t, ok, "meta should hold the response, got %T", recorded.Meta)
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "Time slot is already booked", resp.Error.Message)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{"message": "Time slot is already booked"}, body["error"])
		assert.Equal(t, map[string]any{"conflictingBookingId": "x"}, body["detail"])
	})

	t.Run("nil error falls back to the message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		httperr.AbortWithError(c, http.StatusNotFound, nil, "Booking not found", nil)

		require.Len(t, c.Errors, 1)
		assert.EqualError(t, c.Errors[0].Err, "Booking not found")
		assert.NotContains(t, w.Body.String(), "detail")
	})
}
