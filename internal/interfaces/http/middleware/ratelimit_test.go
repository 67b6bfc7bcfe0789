package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_InvalidRate(t *testing.T) {
	_, err := RateLimit(RateLimitConfig{Rate: "lots"})
	assert.Error(t, err)
}

func TestRateLimit_Memory(t *testing.T) {
	mw, err := RateLimit(RateLimitConfig{Rate: "2-M"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestID(), mw)
	router.GET("/test", okHandler)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := call("10.0.0.1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	blocked := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Contains(t, blocked.Body.String(), "ERR_RATE_LIMITED")

	// counters are per client
	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code)
}
