package handler

import (
	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/repository"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// LogHandler exposes the audit trail (read-only)
type LogHandler struct {
	auditService service.AuditService
	logger       *logger.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(auditService service.AuditService, logger *logger.Logger) *LogHandler {
	return &LogHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// ListLogs handles GET /api/v1/logs
// @Summary List audit logs
// @Description Audit trail of admin actions, newest first
// @Tags logs
// @Produce json
// @Param user_id query int false "Filter by actor"
// @Param action query string false "Filter by action code"
// @Param entity_type query string false "Filter by entity type"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Log} "Logs retrieved"
// @Router /api/v1/logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.LogFilter{
		UserID:     queryUint(c, "user_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Page:       page,
		Limit:      limit,
	}

	logs, total, err := h.auditService.ListLogs(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải nhật ký hệ thống", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy nhật ký hệ thống thành công", logs, page, limit, total)
}
