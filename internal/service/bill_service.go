package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/models/response"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// Validation errors surfaced to clients as 400 responses
var (
	ErrPaidExceedsTotal = errors.New("Số tiền đã thanh toán không được vượt quá tổng số tiền")
	ErrInvalidAmount    = errors.New("Số tiền không hợp lệ")
)

// BillListParams are the request-level filters for listing bills
type BillListParams struct {
	BillID        *uint
	HouseholdID   *uint
	HouseholdName string
	PaymentPeriod string
	Status        string
	CollectorName string
	Page          int
	Limit         int
}

// BillInput carries the writable fields of a bill
type BillInput struct {
	HouseholdID   uint            `json:"household_id" binding:"required"`
	BillingPeriod string          `json:"billing_period" binding:"required"` // YYYY-MM
	Title         string          `json:"title" binding:"required"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	CollectorID   *uint           `json:"collector_id"`
	FeeTypeID     *uint           `json:"fee_type_id"`
}

// BillService defines the interface for bill business operations
type BillService interface {
	ListBills(params BillListParams) ([]*response.BillResponse, int64, int, int, error)
	GetBill(id uint) (*response.BillResponse, error)
	CreateBill(input BillInput, createdBy uint) (*models.Bill, error)
	UpdateBill(id uint, input BillInput) (before *models.Bill, after *models.Bill, err error)
	DeleteBill(id uint) (*models.Bill, error)
	ExportBills(params BillListParams) ([]byte, string, error)
}

// billService implements BillService
type billService struct {
	billRepo repository.BillRepository
	logger   *logger.Logger
}

// NewBillService creates a new instance of BillService
func NewBillService(billRepo repository.BillRepository, logger *logger.Logger) BillService {
	return &billService{
		billRepo: billRepo,
		logger:   logger,
	}
}

// assembleBillFilter converts request parameters into a storage-level filter
// and decides whether status post-filtering is required. A status filter
// cannot be pushed down (status is derived, not stored), so its presence
// forces a full fetch with pagination applied after classification. A
// malformed paymentPeriod is ignored as a filter, not treated as an error.
func assembleBillFilter(params BillListParams) (repository.BillFilter, BillStatus, bool) {
	filter := repository.BillFilter{
		BillID:        params.BillID,
		HouseholdID:   params.HouseholdID,
		HouseholdName: params.HouseholdName,
		CollectorName: params.CollectorName,
		Page:          params.Page,
		Limit:         params.Limit,
	}

	if start, end, ok := parsePaymentPeriod(params.PaymentPeriod); ok {
		filter.PeriodStart = &start
		filter.PeriodEnd = &end
	}

	status, hasStatus := BillStatus(""), false
	if params.Status != "" {
		if parsed, ok := ParseBillStatus(params.Status); ok {
			status, hasStatus = parsed, true
		}
	}

	filter.FetchAll = hasStatus
	return filter, status, hasStatus
}

// parsePaymentPeriod converts "YYYY-MM" into the closed range covering that
// month. Non-numeric or out-of-range input yields ok=false.
func parsePaymentPeriod(period string) (time.Time, time.Time, bool) {
	if period == "" {
		return time.Time{}, time.Time{}, false
	}

	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, false
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, true
}

// paginateByStatus keeps only rows whose derived status matches, then slices
// the page. The returned total is the count of matching rows so pagination
// metadata stays consistent with the returned slice.
func paginateByStatus(rows []*response.BillResponse, status BillStatus, page, limit int) ([]*response.BillResponse, int64) {
	matched := make([]*response.BillResponse, 0, len(rows))
	for _, row := range rows {
		if row.Status == string(status) {
			matched = append(matched, row)
		}
	}

	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []*response.BillResponse{}, total
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total
}

// toBillResponse decorates a bill row with its derived status and display names
func toBillResponse(bill *models.Bill, now time.Time) *response.BillResponse {
	resp := &response.BillResponse{
		ID:            bill.ID,
		HouseholdID:   bill.HouseholdID,
		BillingPeriod: bill.BillingPeriod,
		Title:         bill.Title,
		TotalAmount:   bill.TotalAmount,
		PaidAmount:    bill.PaidAmount,
		Status:        string(ClassifyBillStatus(bill.TotalAmount, bill.PaidAmount, bill.BillingPeriod, now)),
		CollectorID:   bill.CollectorID,
		FeeTypeID:     bill.FeeTypeID,
		CreatedBy:     bill.CreatedBy,
		CreatedAt:     bill.CreatedAt,
	}
	if bill.Household != nil {
		resp.HouseholdCode = bill.Household.Code
		resp.OwnerName = bill.Household.OwnerName
	}
	if bill.Collector != nil {
		resp.CollectorName = bill.Collector.FullName
	}
	if bill.FeeType != nil {
		resp.FeeTypeName = bill.FeeType.FeeName
	}
	return resp
}

// ListBills retrieves bills with derived statuses, honoring all filters and
// pagination
func (s *billService) ListBills(params BillListParams) ([]*response.BillResponse, int64, int, int, error) {
	page := params.Page
	limit := params.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	params.Page = page
	params.Limit = limit

	filter, status, hasStatus := assembleBillFilter(params)

	bills, total, err := s.billRepo.ListBills(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list bills")
		return nil, 0, page, limit, err
	}

	now := time.Now()
	responses := make([]*response.BillResponse, 0, len(bills))
	for _, bill := range bills {
		responses = append(responses, toBillResponse(bill, now))
	}

	if hasStatus {
		responses, total = paginateByStatus(responses, status, page, limit)
	}

	return responses, total, page, limit, nil
}

// GetBill retrieves a single bill with its derived status
func (s *billService) GetBill(id uint) (*response.BillResponse, error) {
	bill, err := s.billRepo.GetBillByID(id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill, time.Now()), nil
}

// validateAmounts enforces the paid <= total invariant at write time
func validateAmounts(total, paid decimal.Decimal) error {
	if total.IsNegative() || paid.IsNegative() {
		return ErrInvalidAmount
	}
	if paid.GreaterThan(total) {
		return ErrPaidExceedsTotal
	}
	return nil
}

// CreateBill validates and inserts a new bill
func (s *billService) CreateBill(input BillInput, createdBy uint) (*models.Bill, error) {
	if err := validateAmounts(input.TotalAmount, input.PaidAmount); err != nil {
		return nil, err
	}

	start, _, ok := parsePaymentPeriod(input.BillingPeriod)
	if !ok {
		return nil, fmt.Errorf("Kỳ thu không hợp lệ: %s", input.BillingPeriod)
	}

	bill := &models.Bill{
		HouseholdID:   input.HouseholdID,
		BillingPeriod: start,
		Title:         input.Title,
		TotalAmount:   input.TotalAmount,
		PaidAmount:    input.PaidAmount,
		CollectorID:   input.CollectorID,
		FeeTypeID:     input.FeeTypeID,
		CreatedBy:     createdBy,
	}

	if err := s.billRepo.CreateBill(bill); err != nil {
		s.logger.WithError(err).WithField("household_id", input.HouseholdID).Error("Failed to create bill")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"bill_id":      bill.ID,
		"household_id": bill.HouseholdID,
		"total_amount": bill.TotalAmount.String(),
	}).Info("Bill created successfully")

	return bill, nil
}

// UpdateBill validates and saves changes to an existing bill, returning both
// the previous and updated rows for audit logging
func (s *billService) UpdateBill(id uint, input BillInput) (*models.Bill, *models.Bill, error) {
	if err := validateAmounts(input.TotalAmount, input.PaidAmount); err != nil {
		return nil, nil, err
	}

	existing, err := s.billRepo.GetBillByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	start, _, ok := parsePaymentPeriod(input.BillingPeriod)
	if !ok {
		return nil, nil, fmt.Errorf("Kỳ thu không hợp lệ: %s", input.BillingPeriod)
	}

	existing.HouseholdID = input.HouseholdID
	existing.BillingPeriod = start
	existing.Title = input.Title
	existing.TotalAmount = input.TotalAmount
	existing.PaidAmount = input.PaidAmount
	existing.CollectorID = input.CollectorID
	existing.FeeTypeID = input.FeeTypeID

	if err := s.billRepo.UpdateBill(existing); err != nil {
		s.logger.WithError(err).WithField("bill_id", id).Error("Failed to update bill")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteBill removes a bill and returns the deleted row for audit logging
func (s *billService) DeleteBill(id uint) (*models.Bill, error) {
	bill, err := s.billRepo.GetBillByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.DeleteBill(id); err != nil {
		s.logger.WithError(err).WithField("bill_id", id).Error("Failed to delete bill")
		return nil, err
	}

	return bill, nil
}

// ExportBills renders the full filtered bill list (pagination ignored) as an
// Excel workbook
func (s *billService) ExportBills(params BillListParams) ([]byte, string, error) {
	filter, status, hasStatus := assembleBillFilter(params)
	filter.FetchAll = true

	bills, _, err := s.billRepo.ListBills(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch bills for export")
		return nil, "", err
	}

	now := time.Now()
	rows := make([]*response.BillResponse, 0, len(bills))
	for _, bill := range bills {
		row := toBillResponse(bill, now)
		if hasStatus && row.Status != string(status) {
			continue
		}
		rows = append(rows, row)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "DanhSachHoaDon"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Mã hóa đơn", "Hộ khẩu", "Chủ hộ", "Kỳ thu", "Tên khoản thu", "Tổng tiền", "Đã thanh toán", "Trạng thái", "Người thu"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.HouseholdCode,
			row.OwnerName,
			row.BillingPeriod.Format("2006-01"),
			row.Title,
			row.TotalAmount.InexactFloat64(),
			row.PaidAmount.InexactFloat64(),
			row.Status,
			row.CollectorName,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.WithError(err).Error("Failed to write export workbook")
		return nil, "", err
	}

	filename := fmt.Sprintf("hoa-don-%s.xlsx", now.Format("20060102-150405"))

	s.logger.WithFields(map[string]interface{}{
		"rows":     len(rows),
		"filename": filename,
	}).Info("Bill export generated")

	return buf.Bytes(), filename, nil
}
