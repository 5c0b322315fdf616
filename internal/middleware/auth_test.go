package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint, role string, secret string, expiry time.Duration) string {
	t.Helper()
	claims := service.AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(testSecret), RequireRole(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CallerID(c)})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingToken(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	w := doRequest(router, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	token := signToken(t, 1, string(models.RoleAdmin), "other-secret", time.Hour)
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	token := signToken(t, 1, string(models.RoleAdmin), testSecret, -time.Minute)
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	token := signToken(t, 42, string(models.RoleAdmin), testSecret, time.Hour)
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	router := protectedRouter(models.RoleAdmin)
	token := signToken(t, 1, string(models.RoleResident), testSecret, time.Hour)
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	router := protectedRouter(models.RoleResident)
	token := signToken(t, 1, "SUPERUSER", testSecret, time.Hour)
	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
