package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resifee-be-svc/internal/middleware"
	"resifee-be-svc/internal/service"
	"resifee-be-svc/pkg/logger"
	"resifee-be-svc/pkg/utils"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService      service.BillService
	householdService service.HouseholdService
	auditService     service.AuditService
	logger           *logger.Logger
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billService service.BillService,
	householdService service.HouseholdService,
	auditService service.AuditService,
	logger *logger.Logger,
) *BillHandler {
	return &BillHandler{
		billService:      billService,
		householdService: householdService,
		auditService:     auditService,
		logger:           logger,
	}
}

// listParamsFromQuery reads the bill filter query parameters
func listParamsFromQuery(c *gin.Context) service.BillListParams {
	page, limit := parsePagination(c)
	return service.BillListParams{
		BillID:        queryUint(c, "bill_id"),
		HouseholdName: c.Query("householdName"),
		PaymentPeriod: c.Query("paymentPeriod"),
		Status:        c.Query("status"),
		CollectorName: c.Query("collectorName"),
		Page:          page,
		Limit:         limit,
	}
}

// ListBills handles GET /api/v1/bills
// @Summary List bills
// @Description List bills with derived payment status. Filters: bill_id, householdName, paymentPeriod (YYYY-MM), status, collectorName. When a status filter is present, pagination applies after classification.
// @Tags bills
// @Accept json
// @Produce json
// @Param bill_id query int false "Exact bill ID"
// @Param householdName query string false "Household owner name (substring, case-insensitive)"
// @Param paymentPeriod query string false "Billing month YYYY-MM"
// @Param status query string false "Derived status label or code (PAID, PARTIAL, UNPAID, OVERDUE)"
// @Param collectorName query string false "Collector name (substring, case-insensitive)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]response.BillResponse} "Bills retrieved"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	params := listParamsFromQuery(c)

	bills, total, page, limit, err := h.billService.ListBills(params)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách hóa đơn", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách hóa đơn thành công", bills, page, limit, total)
}

// ListMyBills handles GET /api/v1/my/bills for resident accounts. The result
// is scoped to the household linked to the caller's account.
// @Summary List the caller's household bills
// @Tags bills
// @Produce json
// @Success 200 {object} utils.PaginatedResponse{data=[]response.BillResponse} "Bills retrieved"
// @Failure 404 {object} utils.APIResponse "No household linked to this account"
// @Router /api/v1/my/bills [get]
func (h *BillHandler) ListMyBills(c *gin.Context) {
	household, err := h.householdService.GetHouseholdByUserID(middleware.CallerID(c))
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Tài khoản chưa được liên kết với hộ khẩu")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải hộ khẩu", err)
		return
	}

	params := listParamsFromQuery(c)
	params.HouseholdID = &household.ID
	params.HouseholdName = ""
	params.CollectorName = ""

	bills, total, page, limit, err := h.billService.ListBills(params)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể tải danh sách hóa đơn", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Lấy danh sách hóa đơn thành công", bills, page, limit, total)
}

// GetBill handles GET /api/v1/bills/:id
// @Summary Get one bill
// @Tags bills
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.APIResponse{data=response.BillResponse} "Bill retrieved"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Router /api/v1/bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hóa đơn không hợp lệ", nil)
		return
	}

	bill, err := h.billService.GetBill(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hóa đơn")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tải hóa đơn", err)
		return
	}

	utils.SuccessResponse(c, "Lấy hóa đơn thành công", bill)
}

// CreateBill handles POST /api/v1/bills
// @Summary Create a bill
// @Description Create a bill. paidAmount greater than totalAmount is rejected.
// @Tags bills
// @Accept json
// @Produce json
// @Param request body service.BillInput true "Bill data"
// @Success 201 {object} utils.APIResponse "Bill created"
// @Failure 400 {object} utils.APIResponse "Validation error"
// @Router /api/v1/bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req service.BillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu hóa đơn không hợp lệ", err)
		return
	}

	bill, err := h.billService.CreateBill(req, middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, service.ErrPaidExceedsTotal) || errors.Is(err, service.ErrInvalidAmount) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể tạo hóa đơn", err)
		return
	}

	h.auditService.Record(auditEntry(c, "CREATE_BILL", "Bill", bill.ID, gin.H{"after": bill}))

	utils.CreatedResponse(c, "Tạo hóa đơn thành công", bill)
}

// UpdateBill handles PUT /api/v1/bills/:id
// @Summary Update a bill
// @Tags bills
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Param request body service.BillInput true "Bill data"
// @Success 200 {object} utils.APIResponse "Bill updated"
// @Failure 400 {object} utils.APIResponse "Validation error"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Router /api/v1/bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hóa đơn không hợp lệ", nil)
		return
	}

	var req service.BillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu hóa đơn không hợp lệ", err)
		return
	}

	before, after, err := h.billService.UpdateBill(id, req)
	if err != nil {
		if errors.Is(err, service.ErrPaidExceedsTotal) || errors.Is(err, service.ErrInvalidAmount) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hóa đơn")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể cập nhật hóa đơn", err)
		return
	}

	h.auditService.Record(auditEntry(c, "UPDATE_BILL", "Bill", id, gin.H{"before": before, "after": after}))

	utils.SuccessResponse(c, "Cập nhật hóa đơn thành công", after)
}

// DeleteBill handles DELETE /api/v1/bills/:id
// @Summary Delete a bill
// @Tags bills
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.APIResponse "Bill deleted"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Router /api/v1/bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Mã hóa đơn không hợp lệ", nil)
		return
	}

	bill, err := h.billService.DeleteBill(id)
	if err != nil {
		if isNotFound(err) {
			utils.NotFoundResponse(c, "Không tìm thấy hóa đơn")
			return
		}
		utils.InternalServerErrorResponse(c, "Không thể xóa hóa đơn", err)
		return
	}

	h.auditService.Record(auditEntry(c, "DELETE_BILL", "Bill", id, gin.H{"before": bill}))

	utils.SuccessResponse(c, "Xóa hóa đơn thành công", nil)
}

// ExportBills handles GET /api/v1/bills/export
// @Summary Export bills to Excel
// @Description Export the full filtered bill list (same filters as the list endpoint, pagination ignored) as an xlsx workbook
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "The workbook"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/export [get]
func (h *BillHandler) ExportBills(c *gin.Context) {
	params := listParamsFromQuery(c)

	content, filename, err := h.billService.ExportBills(params)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Không thể xuất danh sách hóa đơn", err)
		return
	}

	h.auditService.Record(auditEntry(c, "EXPORT_BILLS", "Bill", 0, gin.H{"filename": filename}))

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
