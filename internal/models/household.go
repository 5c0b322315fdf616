package models

import (
	"time"
)

// Household represents the households table
type Household struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Code      string    `json:"code" gorm:"column:code;uniqueIndex;not null"`
	OwnerName string    `json:"owner_name" gorm:"column:owner_name;not null"`
	Address   string    `json:"address" gorm:"column:address"`
	AreaSqm   float64   `json:"area_sqm" gorm:"column:area_sqm"`
	UserID    *uint     `json:"user_id" gorm:"column:user_id;uniqueIndex"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Household
func (Household) TableName() string {
	return "households"
}
