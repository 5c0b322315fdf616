package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resifee-be-svc/internal/models"
)

// fakeStatsRepository serves a fixed bill slice and canned name lookups
type fakeStatsRepository struct {
	bills          []*models.Bill
	householdNames map[uint]string
	userNames      map[uint]string
	feeTypeNames   map[uint]string
	lastStart      time.Time
	lastEnd        time.Time
}

func (r *fakeStatsRepository) GetBillsInRange(start, end time.Time) ([]*models.Bill, error) {
	r.lastStart = start
	r.lastEnd = end
	return r.bills, nil
}

func (r *fakeStatsRepository) GetHouseholdNames(ids []uint) (map[uint]string, error) {
	return r.householdNames, nil
}

func (r *fakeStatsRepository) GetUserNames(ids []uint) (map[uint]string, error) {
	return r.userNames, nil
}

func (r *fakeStatsRepository) GetFeeTypeNames(ids []uint) (map[uint]string, error) {
	return r.feeTypeNames, nil
}

func uintPtr(v uint) *uint { return &v }

func TestGetOverallTotalsAndBuckets(t *testing.T) {
	repo := &fakeStatsRepository{bills: []*models.Bill{
		{BillingPeriod: monthsAgo(1), TotalAmount: d("100000"), PaidAmount: d("100000")}, // paid
		{BillingPeriod: monthsAgo(1), TotalAmount: d("100000"), PaidAmount: d("30000")},  // partial
		{BillingPeriod: monthsAgo(0), TotalAmount: d("100000"), PaidAmount: d("0")},      // unpaid
		{BillingPeriod: monthsAgo(2), TotalAmount: d("100000"), PaidAmount: d("0")},      // overdue
	}}
	svc := NewStatisticsService(repo, testLogger())

	stats, err := svc.GetOverall(time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalBills)
	assert.True(t, stats.TotalRevenue.Equal(d("400000")))
	assert.True(t, stats.TotalPaid.Equal(d("130000")))
	// unpaid amount is revenue minus paid, not a per-status sum
	assert.True(t, stats.UnpaidAmount.Equal(d("270000")))
	assert.Equal(t, int64(1), stats.PaidCount)
	assert.Equal(t, int64(1), stats.PartialCount)
	assert.Equal(t, int64(1), stats.UnpaidCount)
	// the overdue bill lands in the remainder bucket
	assert.Equal(t, int64(1), stats.OtherCount)
}

func TestGetOverallDefaultsToRollingTwelveMonths(t *testing.T) {
	repo := &fakeStatsRepository{}
	svc := NewStatisticsService(repo, testLogger())

	_, err := svc.GetOverall(time.Time{}, time.Time{})
	require.NoError(t, err)

	span := repo.lastEnd.Sub(repo.lastStart)
	assert.InDelta(t, 365*24*time.Hour.Hours(), span.Hours(), 48)
}

func TestGetOverallOtherCountNeverNegative(t *testing.T) {
	repo := &fakeStatsRepository{bills: []*models.Bill{
		{BillingPeriod: monthsAgo(0), TotalAmount: d("100000"), PaidAmount: d("100000")},
	}}
	svc := NewStatisticsService(repo, testLogger())

	stats, err := svc.GetOverall(time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.OtherCount)
}

func TestGetByFeeTypeGroupsAndResolvesNames(t *testing.T) {
	repo := &fakeStatsRepository{
		bills: []*models.Bill{
			{FeeTypeID: uintPtr(1), BillingPeriod: monthsAgo(1), TotalAmount: d("100000"), PaidAmount: d("60000")},
			{FeeTypeID: uintPtr(1), BillingPeriod: monthsAgo(1), TotalAmount: d("50000"), PaidAmount: d("0")},
			{FeeTypeID: uintPtr(2), BillingPeriod: monthsAgo(1), TotalAmount: d("500000"), PaidAmount: d("500000")},
			{FeeTypeID: nil, BillingPeriod: monthsAgo(1), TotalAmount: d("10000"), PaidAmount: d("0")},
		},
		feeTypeNames: map[uint]string{1: "Phí vệ sinh", 2: "Phí quản lý"},
	}
	svc := NewStatisticsService(repo, testLogger())

	groups, err := svc.GetByFeeType(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// sorted by revenue, highest first
	assert.Equal(t, "Phí quản lý", groups[0].GroupKey)
	assert.Equal(t, "Phí vệ sinh", groups[1].GroupKey)
	assert.Equal(t, "Khoản thu khác", groups[2].GroupKey)

	assert.Equal(t, int64(2), groups[1].TotalBills)
	assert.True(t, groups[1].TotalRevenue.Equal(d("150000")))
	assert.True(t, groups[1].TotalPaid.Equal(d("60000")))
	assert.True(t, groups[1].UnpaidAmount.Equal(d("90000")))
}

func TestGetByCollectorUnassignedFallback(t *testing.T) {
	repo := &fakeStatsRepository{
		bills: []*models.Bill{
			{CollectorID: nil, BillingPeriod: monthsAgo(1), TotalAmount: d("10000"), PaidAmount: d("0")},
			{CollectorID: uintPtr(5), BillingPeriod: monthsAgo(1), TotalAmount: d("20000"), PaidAmount: d("20000")},
		},
		userNames: map[uint]string{5: "Nguyễn Văn A"},
	}
	svc := NewStatisticsService(repo, testLogger())

	groups, err := svc.GetByCollector(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	keys := []string{groups[0].GroupKey, groups[1].GroupKey}
	assert.Contains(t, keys, "Nguyễn Văn A")
	assert.Contains(t, keys, "Chưa phân công")
}

func TestGetByPaymentStatusOrdering(t *testing.T) {
	repo := &fakeStatsRepository{bills: []*models.Bill{
		{BillingPeriod: monthsAgo(2), TotalAmount: d("100000"), PaidAmount: d("0")},      // overdue
		{BillingPeriod: monthsAgo(1), TotalAmount: d("100000"), PaidAmount: d("100000")}, // paid
		{BillingPeriod: monthsAgo(0), TotalAmount: d("100000"), PaidAmount: d("0")},      // unpaid
		{BillingPeriod: monthsAgo(1), TotalAmount: d("100000"), PaidAmount: d("50000")},  // partial
	}}
	svc := NewStatisticsService(repo, testLogger())

	groups, err := svc.GetByPaymentStatus(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, groups, 4)

	assert.Equal(t, string(StatusPaid), groups[0].GroupKey)
	assert.Equal(t, string(StatusPartial), groups[1].GroupKey)
	assert.Equal(t, string(StatusUnpaid), groups[2].GroupKey)
	assert.Equal(t, string(StatusOverdue), groups[3].GroupKey)
}

func TestGetByPeriodBuckets(t *testing.T) {
	repo := &fakeStatsRepository{bills: []*models.Bill{
		{BillingPeriod: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: d("10000"), PaidAmount: d("0")},
		{BillingPeriod: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: d("20000"), PaidAmount: d("0")},
		{BillingPeriod: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), TotalAmount: d("30000"), PaidAmount: d("0")},
	}}
	svc := NewStatisticsService(repo, testLogger())

	groups, err := svc.GetByPeriod(time.Time{}, time.Time{}, "month")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// sorted by bucket key ascending
	assert.Equal(t, "2026-01", groups[0].GroupKey)
	assert.Equal(t, int64(2), groups[0].TotalBills)
	assert.True(t, groups[0].TotalRevenue.Equal(d("30000")))
	assert.Equal(t, "2026-02", groups[1].GroupKey)
}

func TestGetByPeriodDefaultsToMonth(t *testing.T) {
	repo := &fakeStatsRepository{bills: []*models.Bill{
		{BillingPeriod: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), TotalAmount: d("10000"), PaidAmount: d("0")},
	}}
	svc := NewStatisticsService(repo, testLogger())

	groups, err := svc.GetByPeriod(time.Time{}, time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "2026-03", groups[0].GroupKey)
}

func TestGetByPeriodRejectsUnknownBucket(t *testing.T) {
	repo := &fakeStatsRepository{}
	svc := NewStatisticsService(repo, testLogger())

	_, err := svc.GetByPeriod(time.Time{}, time.Time{}, "week")
	assert.ErrorIs(t, err, ErrInvalidGroupBy)
}
