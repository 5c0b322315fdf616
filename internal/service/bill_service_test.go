package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// fakeBillRepository is an in-memory BillRepository for service tests
type fakeBillRepository struct {
	bills      []*models.Bill
	lastFilter repository.BillFilter
	nextID     uint
}

func newFakeBillRepository(bills ...*models.Bill) *fakeBillRepository {
	repo := &fakeBillRepository{nextID: 1}
	for _, bill := range bills {
		bill.ID = repo.nextID
		repo.nextID++
		repo.bills = append(repo.bills, bill)
	}
	return repo
}

func (r *fakeBillRepository) GetBillByID(id uint) (*models.Bill, error) {
	for _, bill := range r.bills {
		if bill.ID == id {
			copied := *bill
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBillRepository) ListBills(filter repository.BillFilter) ([]*models.Bill, int64, error) {
	r.lastFilter = filter

	total := int64(len(r.bills))
	if filter.FetchAll {
		return r.bills, total, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(r.bills) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(r.bills) {
		end = len(r.bills)
	}
	return r.bills[offset:end], total, nil
}

func (r *fakeBillRepository) CreateBill(bill *models.Bill) error {
	bill.ID = r.nextID
	r.nextID++
	r.bills = append(r.bills, bill)
	return nil
}

func (r *fakeBillRepository) UpdateBill(bill *models.Bill) error {
	for i, existing := range r.bills {
		if existing.ID == bill.ID {
			r.bills[i] = bill
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeBillRepository) DeleteBill(id uint) error {
	for i, existing := range r.bills {
		if existing.ID == id {
			r.bills = append(r.bills[:i], r.bills[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

func monthsAgo(n int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
}

func TestListBillsStatusFilterPaginatesAfterClassification(t *testing.T) {
	// one paid, one partial, one overdue bill
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(2), Title: "Phí tháng 1", TotalAmount: d("100000"), PaidAmount: d("100000")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(2), Title: "Phí tháng 1", TotalAmount: d("100000"), PaidAmount: d("50000")},
		&models.Bill{HouseholdID: 2, BillingPeriod: monthsAgo(2), Title: "Phí tháng 1", TotalAmount: d("100000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	bills, total, page, limit, err := svc.ListBills(BillListParams{Status: "Đã thanh toán", Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, bills, 1)
	assert.Equal(t, string(StatusPaid), bills[0].Status)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	// the status filter forces a full fetch so no matching row is lost to
	// storage-level pagination
	assert.True(t, repo.lastFilter.FetchAll)
}

func TestListBillsStatusFilterAcceptsEnumCode(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(3), Title: "Phí", TotalAmount: d("80000"), PaidAmount: d("0")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(3), Title: "Phí", TotalAmount: d("80000"), PaidAmount: d("80000")},
	)
	svc := NewBillService(repo, testLogger())

	bills, total, _, _, err := svc.ListBills(BillListParams{Status: "OVERDUE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bills, 1)
	assert.Equal(t, string(StatusOverdue), bills[0].Status)
}

func TestListBillsWithoutStatusUsesStoragePagination(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	bills, total, _, _, err := svc.ListBills(BillListParams{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.False(t, repo.lastFilter.FetchAll)
	assert.Equal(t, int64(3), total)
	assert.Len(t, bills, 1)
}

func TestListBillsStatusFilterSecondPage(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("10000")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("10000")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("10000")},
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	bills, total, _, _, err := svc.ListBills(BillListParams{Status: "PAID", Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	assert.Len(t, bills, 1)
}

func TestListBillsMalformedPaymentPeriodIgnored(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	bills, total, _, _, err := svc.ListBills(BillListParams{PaymentPeriod: "not-a-period"})
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.PeriodStart)
	assert.Nil(t, repo.lastFilter.PeriodEnd)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bills, 1)
}

func TestParsePaymentPeriod(t *testing.T) {
	start, end, ok := parsePaymentPeriod("2026-02")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.After(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))

	for _, bad := range []string{"", "2026", "2026-13", "2026-00", "abcd-ef", "2026-1-1x"} {
		_, _, ok := parsePaymentPeriod(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestCreateBillRejectsPaidOverTotal(t *testing.T) {
	repo := newFakeBillRepository()
	svc := NewBillService(repo, testLogger())

	_, err := svc.CreateBill(BillInput{
		HouseholdID:   1,
		BillingPeriod: "2026-03",
		Title:         "Phí dịch vụ",
		TotalAmount:   d("100000"),
		PaidAmount:    d("200000"),
	}, 7)

	assert.ErrorIs(t, err, ErrPaidExceedsTotal)
	assert.Empty(t, repo.bills)
}

func TestCreateBillRejectsNegativeAmounts(t *testing.T) {
	repo := newFakeBillRepository()
	svc := NewBillService(repo, testLogger())

	_, err := svc.CreateBill(BillInput{
		HouseholdID:   1,
		BillingPeriod: "2026-03",
		Title:         "Phí dịch vụ",
		TotalAmount:   d("-1"),
		PaidAmount:    d("0"),
	}, 7)

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateBillStoresPeriodStartAndCreator(t *testing.T) {
	repo := newFakeBillRepository()
	svc := NewBillService(repo, testLogger())

	bill, err := svc.CreateBill(BillInput{
		HouseholdID:   3,
		BillingPeriod: "2026-02",
		Title:         "Phí vệ sinh",
		TotalAmount:   d("50000"),
		PaidAmount:    d("0"),
	}, 9)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), bill.BillingPeriod)
	assert.Equal(t, uint(9), bill.CreatedBy)
}

func TestUpdateBillReturnsBeforeAndAfter(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí cũ", TotalAmount: d("100000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	before, after, err := svc.UpdateBill(1, BillInput{
		HouseholdID:   1,
		BillingPeriod: "2026-04",
		Title:         "Phí mới",
		TotalAmount:   d("100000"),
		PaidAmount:    d("100000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Phí cũ", before.Title)
	assert.Equal(t, "Phí mới", after.Title)
	assert.True(t, after.PaidAmount.Equal(d("100000")))
}

func TestDeleteBillReturnsDeletedRow(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(1), Title: "Phí", TotalAmount: d("10000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	deleted, err := svc.DeleteBill(1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), deleted.ID)
	assert.Empty(t, repo.bills)

	_, err = svc.DeleteBill(1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExportBillsFetchesAllAndFiltersByStatus(t *testing.T) {
	repo := newFakeBillRepository(
		&models.Bill{HouseholdID: 1, BillingPeriod: monthsAgo(2), Title: "Phí", TotalAmount: d("100000"), PaidAmount: d("100000")},
		&models.Bill{HouseholdID: 2, BillingPeriod: monthsAgo(2), Title: "Phí", TotalAmount: d("100000"), PaidAmount: d("0")},
	)
	svc := NewBillService(repo, testLogger())

	data, filename, err := svc.ExportBills(BillListParams{Status: "PAID"})
	require.NoError(t, err)

	assert.True(t, repo.lastFilter.FetchAll)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, "hoa-don-")
	assert.Contains(t, filename, ".xlsx")
}
