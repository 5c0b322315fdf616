package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestClassifyBillStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	currentMonth := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pastMonth := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	futureMonth := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		total    string
		paid     string
		period   time.Time
		expected BillStatus
	}{
		{"fully paid", "100000", "100000", pastMonth, StatusPaid},
		{"overpaid still counts as paid", "100000", "150000", pastMonth, StatusPaid},
		{"partial payment", "100000", "40000", pastMonth, StatusPartial},
		{"unpaid current month", "100000", "0", currentMonth, StatusUnpaid},
		{"unpaid future month", "100000", "0", futureMonth, StatusUnpaid},
		{"unpaid past month is overdue", "100000", "0", pastMonth, StatusOverdue},
		{"zero total zero paid is not paid", "0", "0", currentMonth, StatusUnpaid},
		{"zero total zero paid past month is overdue", "0", "0", pastMonth, StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ClassifyBillStatus(d(tt.total), d(tt.paid), tt.period, now)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestClassifyBillStatusMonthBoundary(t *testing.T) {
	// December of the previous year is overdue even though its month number
	// is larger than January's
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	period := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	status := ClassifyBillStatus(d("50000"), d("0"), period, now)
	assert.Equal(t, StatusOverdue, status)
}

func TestParseBillStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected BillStatus
		ok       bool
	}{
		{"Đã thanh toán", StatusPaid, true},
		{"Thanh toán một phần", StatusPartial, true},
		{"Chưa thanh toán", StatusUnpaid, true},
		{"Quá hạn", StatusOverdue, true},
		{"PAID", StatusPaid, true},
		{"paid", StatusPaid, true},
		{" overdue ", StatusOverdue, true},
		{"PARTIAL", StatusPartial, true},
		{"UNPAID", StatusUnpaid, true},
		{"bogus", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, ok := ParseBillStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, status)
			}
		})
	}
}
