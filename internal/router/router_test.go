// internal/router/router_test.go
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/config"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return Initialize(nil, &config.Config{})
}

func routeExists(r *gin.Engine, method, path string) bool {
	for _, route := range r.Routes() {
		if route.Method == method && route.Path == path {
			return true
		}
	}
	return false
}

func TestOrderTrackingIsPublic(t *testing.T) {
	r := testEngine()

	assert.True(t, routeExists(r, http.MethodGet, "/v1/track/:orderId"))
	assert.True(t, routeExists(r, http.MethodGet, "/v1/orders/:orderId"))

	// Without a bearer token the order routes reject the request; the
	// tracking route is reachable by anyone holding the order number.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/orders/ABC123XYZ", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/v1/track/ABC123XYZ", nil)
	r.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
