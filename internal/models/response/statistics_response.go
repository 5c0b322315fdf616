package response

import (
	"github.com/shopspring/decimal"
)

// StatisticsGroup holds aggregate totals for one group (fee type, household,
// collector, payment status or time period)
type StatisticsGroup struct {
	GroupKey     string          `json:"group_key" example:"Phí quản lý"`
	GroupID      uint            `json:"group_id,omitempty" example:"3"`
	TotalBills   int64           `json:"total_bills" example:"24"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
}

// OverallStatistics is the dashboard summary across the whole date range
type OverallStatistics struct {
	TotalBills   int64           `json:"total_bills" example:"120"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
	PaidCount    int64           `json:"paid_count" example:"80"`
	PartialCount int64           `json:"partial_count" example:"10"`
	UnpaidCount  int64           `json:"unpaid_count" example:"25"`
	OtherCount   int64           `json:"other_count" example:"5"`
}
