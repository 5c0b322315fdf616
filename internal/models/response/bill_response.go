package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillResponse is a bill row decorated with its derived payment status
type BillResponse struct {
	ID            uint            `json:"id" example:"1"`
	HouseholdID   uint            `json:"household_id" example:"12"`
	HouseholdCode string          `json:"household_code" example:"HK-0012"`
	OwnerName     string          `json:"owner_name" example:"Nguyễn Văn An"`
	BillingPeriod time.Time       `json:"billing_period"`
	Title         string          `json:"title" example:"Phí dịch vụ tháng 6"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        string          `json:"status" example:"Đã thanh toán"`
	CollectorID   *uint           `json:"collector_id,omitempty"`
	CollectorName string          `json:"collector_name,omitempty" example:"Trần Thị Bình"`
	FeeTypeID     *uint           `json:"fee_type_id,omitempty"`
	FeeTypeName   string          `json:"fee_type_name,omitempty" example:"Phí quản lý"`
	CreatedBy     uint            `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
