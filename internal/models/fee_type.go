package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType represents the fee_types table
type FeeType struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	FeeName     string          `json:"fee_name" gorm:"column:fee_name;not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(15,2)"`
	Unit        string          `json:"unit" gorm:"column:unit"`
	Description string          `json:"description" gorm:"column:description;type:text"`
	IsActive    bool            `json:"is_active" gorm:"column:is_active;default:true;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for FeeType
func (FeeType) TableName() string {
	return "fee_types"
}
