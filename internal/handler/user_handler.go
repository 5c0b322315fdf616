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

// UserHandler handles user account HTTP requests (admin side)
type UserHandler struct {
	userService  service.UserService
	auditService service.AuditService
	logger       *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, auditService service.AuditService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		auditService: auditService,
		logger:       logger,
	}
}

// ListUsers handles GET /api/v1/users
// @Summary List user accounts
// @Tags users
// @Produce json
// @Param q query string false "Search by username, email or full name"
// @Param role query string false "Filter by role (ADMIN or RESIDENT)"
// @Param status query string false "Filter by status (ACTIVE or LOCKED)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.User} "Users retrieved"
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.UserFilter{
		Keyword: c.Query("q"),
		Role:    c.Query("role"),
		Status:  c.Query("status"),
		Page:    page,
		Limit:   limit,
	}

	users, total, err := h.userService.ListUsers(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách tài khoản", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách tài khoản thành công", users, page, limit, total)
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã tài khoản không hợp lệ", nil)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy tài khoản")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải tài khoản", err)
		return
	}

	utils.SuccessResponse(c, "Lấy tài khoản thành công", user)
}

// CreateUser handles POST /api/v1/users
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UserInput true "Account data"
// @Success 201 {object} utils.APIResponse{data=models.User} "User created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Username or email already taken"
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu tài khoản không hợp lệ", err)
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalServerErrorResponse(c, "Không thể tạo tài khoản", err)
		}
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_USER", "User", user.ID, gin.H{"after": user}))

	utils.CreatedResponse(c, "Tạo tài khoản thành công", user)
}

// UpdateUser handles PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã tài khoản không hợp lệ", nil)
		return
	}

	var req service.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu tài khoản không hợp lệ", err)
		return
	}

	before, after, err := h.userService.UpdateUser(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			utils.BadRequestResponse(c, err.Error(), nil)
		case isNotFound(err):
			utils.NotFoundResponse(c, "Không tìm thấy tài khoản")
		default:
			utils.InternalServerErrorResponse(c, "Không thể cập nhật tài khoản", err)
		}
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_USER", "User", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật tài khoản thành công", after)
}

// DeleteUser handles DELETE /api/v1/users/:id. Admins cannot delete their own
// account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã tài khoản không hợp lệ", nil)
		return
	}

	user, err := h.userService.DeleteUser(id, middleware.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			utils.BadRequestResponse(c, err.Error(), nil)
		case isNotFound(err):
			utils.NotFoundResponse(c, "Không tìm thấy tài khoản")
		default:
			utils.InternalServerErrorResponse(c, "Không thể xóa tài khoản", err)
		}
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_USER", "User", id, gin.H{"before": user}))

	utils.SuccessResponse(c, "Xóa tài khoản thành công", nil)
}
