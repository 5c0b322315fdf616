package handler

import (
	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/repository"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// ResidentHandler handles resident-related HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	auditService    service.AuditService
	logger          *logger.Logger
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(residentService service.ResidentService, auditService service.AuditService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		auditService:    auditService,
		logger:          logger,
	}
}

// ListResidents handles GET /api/v1/residents
// @Summary List residents
// @Tags residents
// @Produce json
// @Param household_id query int false "Filter by household"
// @Param q query string false "Search by name or identity card number"
// @Param is_staying query bool false "Filter by staying flag"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Resident} "Residents retrieved"
// @Router /api/v1/residents [get]
func (h *ResidentHandler) ListResidents(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.ResidentFilter{
		HouseholdID: queryUint(c, "household_id"),
		Keyword:     c.Query("q"),
		IsStaying:   queryBool(c, "is_staying"),
		Page:        page,
		Limit:       limit,
	}

	residents, total, err := h.residentService.ListResidents(filter)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách nhân khẩu", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách nhân khẩu thành công", residents, page, limit, total)
}

// GetResident handles GET /api/v1/residents/:id
func (h *ResidentHandler) GetResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã nhân khẩu không hợp lệ", nil)
		return
	}

	resident, err := h.residentService.GetResidentByID(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy nhân khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải nhân khẩu", err)
		return
	}

	utils.SuccessResponse(c, "Lấy nhân khẩu thành công", resident)
}

// CreateResident handles POST /api/v1/residents
func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var req service.ResidentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu nhân khẩu không hợp lệ", err)
		return
	}

	resident, err := h.residentService.CreateResident(req)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tạo nhân khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_RESIDENT", "Resident", resident.ID, gin.H{"after": resident}))

	utils.CreatedResponse(c, "Tạo nhân khẩu thành công", resident)
}

// UpdateResident handles PUT /api/v1/residents/:id
func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã nhân khẩu không hợp lệ", nil)
		return
	}

	var req service.ResidentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu nhân khẩu không hợp lệ", err)
		return
	}

	before, after, err := h.residentService.UpdateResident(id, req)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy nhân khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể cập nhật nhân khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_RESIDENT", "Resident", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật nhân khẩu thành công", after)
}

// DeleteResident handles DELETE /api/v1/residents/:id
func (h *ResidentHandler) DeleteResident(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã nhân khẩu không hợp lệ", nil)
		return
	}

	resident, err := h.residentService.DeleteResident(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy nhân khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể xóa nhân khẩu", err)
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_RESIDENT", "Resident", id, gin.H{"before": resident}))

	utils.SuccessResponse(c, "Xóa nhân khẩu thành công", nil)
}
