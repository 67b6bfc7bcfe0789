package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), okHandler)
	return router
}

func swaggerGet(router http.Handler, remote string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, swaggerGet(swaggerRouter(SwaggerConfig{}), "10.1.2.3:1234"))
	assert.Equal(t, http.StatusOK, swaggerGet(swaggerRouter(SwaggerConfig{Enabled: true}), "10.1.2.3:1234"))

	restricted := swaggerRouter(SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16", "10.1.2.3", "not-an-ip"}})
	assert.Equal(t, http.StatusOK, swaggerGet(restricted, "10.1.2.3:1234"))
	assert.Equal(t, http.StatusOK, swaggerGet(restricted, "192.168.44.1:1234"))
	assert.Equal(t, http.StatusForbidden, swaggerGet(restricted, "172.16.0.1:1234"))
}
