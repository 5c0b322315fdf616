package handler

import (
	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/middleware"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// HouseholdHandler handles household-related HTTP requests
type HouseholdHandler struct {
	householdService service.HouseholdService
	auditService     service.AuditService
	logger           *logger.Logger
}

// NewHouseholdHandler creates a new household handler
func NewHouseholdHandler(householdService service.HouseholdService, auditService service.AuditService, logger *logger.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		auditService:     auditService,
		logger:           logger,
	}
}

// ListHouseholds handles GET /api/v1/households
// @Summary List households
// @Tags households
// @Produce json
// @Param q query string false "Search by code, owner name or address"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Household} "Households retrieved"
// @Router /api/v1/households [get]
func (h *HouseholdHandler) ListHouseholds(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.HouseholdFilter{
		Keyword: c.Query("q"),
		Page:    page,
		Limit:   limit,
	}

	households, total, err := h.householdService.ListHouseholds(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách hộ khẩu", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách hộ khẩu thành công", households, page, limit, total)
}

// GetHousehold handles GET /api/v1/households/:id
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hộ khẩu không hợp lệ", nil)
		return
	}

	household, err := h.householdService.GetHouseholdByID(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hộ khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải hộ khẩu", err)
		return
	}

	utils.SuccessResponse(c, "Lấy hộ khẩu thành công", household)
}

// GetMyHousehold handles GET /api/v1/my/household for resident accounts
func (h *HouseholdHandler) GetMyHousehold(c *gin.Context) {
	household, err := h.householdService.GetHouseholdByUserID(middleware.CallerID(c))
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Tài khoản chưa được liên kết với hộ khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải hộ khẩu", err)
		return
	}

	utils.SuccessResponse(c, "Lấy hộ khẩu thành công", household)
}

// CreateHousehold handles POST /api/v1/households
// @Summary Create a household
// @Tags households
// @Accept json
// @Produce json
// @Param request body service.HouseholdInput true "Household data"
// @Success 201 {object} utils.APIResponse "Household created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/households [post]
func (h *HouseholdHandler) CreateHousehold(c *gin.Context) {
	var req service.HouseholdInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu hộ khẩu không hợp lệ", err)
		return
	}

	household, err := h.householdService.CreateHousehold(req)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tạo hộ khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_HOUSEHOLD", "Household", household.ID, gin.H{"after": household}))

	utils.CreatedResponse(c, "Tạo hộ khẩu thành công", household)
}

// UpdateHousehold handles PUT /api/v1/households/:id
func (h *HouseholdHandler) UpdateHousehold(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hộ khẩu không hợp lệ", nil)
		return
	}

	var req service.HouseholdInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu hộ khẩu không hợp lệ", err)
		return
	}

	before, after, err := h.householdService.UpdateHousehold(id, req)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hộ khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể cập nhật hộ khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_HOUSEHOLD", "Household", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật hộ khẩu thành công", after)
}

// DeleteHousehold handles DELETE /api/v1/households/:id
func (h *HouseholdHandler) DeleteHousehold(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hộ khẩu không hợp lệ", nil)
		return
	}

	household, err := h.householdService.DeleteHousehold(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hộ khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể xóa hộ khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_HOUSEHOLD", "Household", id, gin.H{"before": household}))

	utils.SuccessResponse(c, "Xóa hộ khẩu thành công", nil)
}
