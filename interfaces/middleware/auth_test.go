package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instagram-gateway/infrastructure/configuration"
	"instagram-gateway/infrastructure/utils"
	"instagram-gateway/interfaces/middleware"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Auth())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return router
}

func withSecretKey(t *testing.T, key string) {
	t.Helper()
	prev := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = key
	t.Cleanup(func() { configuration.C.App.SecretKey = prev })
}

func TestAuthDisabledWithoutSecretKey(t *testing.T) {
	withSecretKey(t, "")
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	withSecretKey(t, "super-secret")
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	withSecretKey(t, "super-secret")
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "That's not even a token")
}

func TestAuthAcceptsSignedToken(t *testing.T) {
	withSecretKey(t, "super-secret")
	router := newAuthRouter()

	token, err := utils.GenerateToken(map[string]interface{}{
		"user_name": "operator",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}, "super-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	withSecretKey(t, "super-secret")
	router := newAuthRouter()

	token, err := utils.GenerateToken(map[string]interface{}{
		"user_name": "operator",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	}, "super-secret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Timing is everything")
}
