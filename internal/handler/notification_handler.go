package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/middleware"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	auditService        service.AuditService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService service.NotificationService, auditService service.AuditService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		auditService:        auditService,
		logger:              logger,
	}
}

// ListNotifications handles GET /api/v1/notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param user_id query int false "Filter by recipient"
// @Param is_read query bool false "Filter by read flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Notification} "Notifications retrieved"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.NotificationFilter{
		UserID: queryUint(c, "user_id"),
		IsRead: queryBool(c, "is_read"),
		Page:   page,
		Limit:  limit,
	}

	notifications, total, err := h.notificationService.ListNotifications(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách thông báo", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách thông báo thành công", notifications, page, limit, total)
}

// ListMyNotifications handles GET /api/v1/my/notifications for resident accounts
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param is_read query bool false "Filter by read flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Notification} "Notifications retrieved"
// @Router /api/v1/my/notifications [get]
func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	page, limit := parsePagination(c)
	callerID := middleware.CallerID(c)
	filter := repository.NotificationFilter{
		UserID: &callerID,
		IsRead: queryBool(c, "is_read"),
		Page:   page,
		Limit:  limit,
	}

	notifications, total, err := h.notificationService.ListNotifications(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách thông báo", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách thông báo thành công", notifications, page, limit, total)
}

// GetNotification handles GET /api/v1/notifications/:id
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã thông báo không hợp lệ", nil)
		return
	}

	notification, err := h.notificationService.GetNotificationByID(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy thông báo")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải thông báo", err)
		return
	}

	utils.SuccessResponse(c, "Lấy thông báo thành công", notification)
}

// CreateNotification handles POST /api/v1/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req service.NotificationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu thông báo không hợp lệ", err)
		return
	}

	notification, err := h.notificationService.CreateNotification(req)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tạo thông báo", err)
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_NOTIFICATION", "Notification", notification.ID, gin.H{"after": notification}))

	utils.CreatedResponse(c, "Tạo thông báo thành công", notification)
}

// UpdateNotification handles PUT /api/v1/notifications/:id
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã thông báo không hợp lệ", nil)
		return
	}

	var req service.NotificationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu thông báo không hợp lệ", err)
		return
	}

	before, after, err := h.notificationService.UpdateNotification(id, req)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy thông báo")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể cập nhật thông báo", err)
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_NOTIFICATION", "Notification", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật thông báo thành công", after)
}

// DeleteNotification handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã thông báo không hợp lệ", nil)
		return
	}

	notification, err := h.notificationService.DeleteNotification(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy thông báo")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể xóa thông báo", err)
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_NOTIFICATION", "Notification", id, gin.H{"before": notification}))

	utils.SuccessResponse(c, "Xóa thông báo thành công", nil)
}

// MarkMyNotificationRead handles PUT /api/v1/my/notifications/:id/read
// @Summary Mark one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse{data=models.Notification} "Notification updated"
// @Failure 403 {object} utils.APIResponse "Notification belongs to another account"
// @Router /api/v1/my/notifications/{id}/read [put]
func (h *NotificationHandler) MarkMyNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã thông báo không hợp lệ", nil)
		return
	}

	notification, err := h.notificationService.MarkRead(id, middleware.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotYourNotification):
			utils.ForbiddenResponse(c, err.Error())
		case isNotFound(err):
			utils.NotFoundResponse(c, "Không tìm thấy thông báo")
		default:
			utils.InternalServerErrorResponse(c, "Không thể cập nhật thông báo", err)
		}
		return
	}

	utils.SuccessResponse(c, "Đánh dấu đã đọc thành công", notification)
}
