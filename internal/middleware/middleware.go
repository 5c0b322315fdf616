package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// RequestIDHeader carries the correlation id echoed back to clients
const RequestIDHeader = "X-Request-ID"

// CORS configures cross-origin access for the configured origins
func CORS(allowedOrigins string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(config)
}

// RequestID assigns each request a correlation id, keeping a caller-supplied
// one when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware logs one structured line per request
func LoggerMiddleware(appLogger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		appLogger.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(RequestIDHeader),
		}).Info("Request handled")
	}
}

// ErrorHandler recovers from panics and returns a JSON 500
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				utils.InternalServerErrorResponse(c, "Internal server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NoRouteHandler returns a JSON 404 for unknown routes
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route not found")
	}
}

// NoMethodHandler returns a JSON 404 for unsupported methods
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, "Method not allowed")
	}
}
