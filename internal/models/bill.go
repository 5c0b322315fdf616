package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents the bills table. Payment status is never stored; it is
// derived from total_amount, paid_amount and billing_period at read time.
type Bill struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	HouseholdID   uint            `json:"household_id" gorm:"column:household_id;not null;index"`
	Household     *Household      `json:"household,omitempty" gorm:"foreignKey:HouseholdID"`
	BillingPeriod time.Time       `json:"billing_period" gorm:"column:billing_period;not null;index"`
	Title         string          `json:"title" gorm:"column:title;not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:numeric(15,2);not null"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"column:paid_amount;type:numeric(15,2);not null"`
	CollectorID   *uint           `json:"collector_id" gorm:"column:collector_id;index"`
	Collector     *User           `json:"collector,omitempty" gorm:"foreignKey:CollectorID"`
	FeeTypeID     *uint           `json:"fee_type_id" gorm:"column:fee_type_id;index"`
	FeeType       *FeeType        `json:"fee_type,omitempty" gorm:"foreignKey:FeeTypeID"`
	CreatedBy     uint            `json:"created_by" gorm:"column:created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Bill
func (Bill) TableName() string {
	return "bills"
}
