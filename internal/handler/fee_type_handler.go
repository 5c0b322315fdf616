package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/repository"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// FeeTypeHandler handles fee type HTTP requests
type FeeTypeHandler struct {
	feeTypeService service.FeeTypeService
	auditService   service.AuditService
	logger         *logger.Logger
}

// NewFeeTypeHandler creates a new fee type handler
func NewFeeTypeHandler(feeTypeService service.FeeTypeService, auditService service.AuditService, logger *logger.Logger) *FeeTypeHandler {
	return &FeeTypeHandler{
		feeTypeService: feeTypeService,
		auditService:   auditService,
		logger:         logger,
	}
}

// ListFeeTypes handles GET /api/v1/fee-types
// @Summary List fee types
// @Tags fee-types
// @Produce json
// @Param q query string false "Search by fee name"
// @Param is_active query bool false "Filter by active flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.FeeType} "Fee types retrieved"
// @Router /api/v1/fee-types [get]
func (h *FeeTypeHandler) ListFeeTypes(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.FeeTypeFilter{
		Keyword:  c.Query("q"),
		IsActive: queryBool(c, "is_active"),
		Page:     page,
		Limit:    limit,
	}

	feeTypes, total, err := h.feeTypeService.ListFeeTypes(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách khoản thu", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách khoản thu thành công", feeTypes, page, limit, total)
}

// GetFeeType handles GET /api/v1/fee-types/:id
func (h *FeeTypeHandler) GetFeeType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã khoản thu không hợp lệ", nil)
		return
	}

	feeType, err := h.feeTypeService.GetFeeTypeByID(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy khoản thu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải khoản thu", err)
		return
	}

	utils.SuccessResponse(c, "Lấy khoản thu thành công", feeType)
}

// CreateFeeType handles POST /api/v1/fee-types
func (h *FeeTypeHandler) CreateFeeType(c *gin.Context) {
	var req service.FeeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu khoản thu không hợp lệ", err)
		return
	}

	feeType, err := h.feeTypeService.CreateFeeType(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tạo khoản thu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_FEE_TYPE", "FeeType", feeType.ID, gin.H{"after": feeType}))

	utils.CreatedResponse(c, "Tạo khoản thu thành công", feeType)
}

// UpdateFeeType handles PUT /api/v1/fee-types/:id
func (h *FeeTypeHandler) UpdateFeeType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã khoản thu không hợp lệ", nil)
		return
	}

	var req service.FeeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu khoản thu không hợp lệ", err)
		return
	}

	before, after, err := h.feeTypeService.UpdateFeeType(id, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy khoản thu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể cập nhật khoản thu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_FEE_TYPE", "FeeType", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật khoản thu thành công", after)
}

// DeleteFeeType handles DELETE /api/v1/fee-types/:id
func (h *FeeTypeHandler) DeleteFeeType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã khoản thu không hợp lệ", nil)
		return
	}

	feeType, err := h.feeTypeService.DeleteFeeType(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy khoản thu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể xóa khoản thu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_FEE_TYPE", "FeeType", id, gin.H{"before": feeType}))

	utils.SuccessResponse(c, "Xóa khoản thu thành công", nil)
}
