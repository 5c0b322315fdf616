package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resifee-be-svc/internal/middleware"
	"resifee-be-svc/internal/service"
)

// parsePagination reads page/limit query params with the standard defaults
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	limit := 10

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	return page, limit
}

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// queryUint reads an optional numeric query parameter
func queryUint(c *gin.Context, name string) *uint {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			value := uint(v)
			return &value
		}
	}
	return nil
}

// queryBool reads an optional boolean query parameter
func queryBool(c *gin.Context, name string) *bool {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return &v
		}
	}
	return nil
}

// isNotFound reports whether the error is a missing-record error
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// auditEntry builds the common audit fields from the request context
func auditEntry(c *gin.Context, action, entityType string, entityID uint, details interface{}) service.AuditEntry {
	return service.AuditEntry{
		UserID:     middleware.CallerID(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
}
