package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/utils"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "auth_user_id"
	ContextRole   = "auth_role"
)

// JWTAuth validates the Bearer token and stores the caller's identity in the
// request context
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Thiếu token xác thực")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &service.AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Token không hợp lệ hoặc đã hết hạn")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Roles are a closed enum, so
// anything unrecognized is rejected.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			utils.UnauthorizedResponse(c, "Thiếu token xác thực")
			c.Abort()
			return
		}

		callerRole := models.UserRole(value.(string))
		if !callerRole.Valid() || callerRole != role {
			utils.ForbiddenResponse(c, "Không có quyền truy cập")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user ID from the request context
func CallerID(c *gin.Context) uint {
	if value, exists := c.Get(ContextUserID); exists {
		if id, ok := value.(uint); ok {
			return id
		}
	}
	return 0
}
