package models

import (
	"time"
)

// Resident represents the residents table
type Resident struct {
	ID                 uint       `json:"id" gorm:"primarykey"`
	HouseholdID        uint       `json:"household_id" gorm:"column:household_id;not null;index"`
	Household          *Household `json:"household,omitempty" gorm:"foreignKey:HouseholdID"`
	FullName           string     `json:"full_name" gorm:"column:full_name;not null"`
	DateOfBirth        *time.Time `json:"date_of_birth" gorm:"column:date_of_birth"`
	IdentityCardNumber string     `json:"identity_card_number" gorm:"column:identity_card_number;uniqueIndex"`
	Relation           string     `json:"relation" gorm:"column:relation"`
	Job                string     `json:"job" gorm:"column:job"`
	Phone              string     `json:"phone" gorm:"column:phone"`
	IsStaying          bool       `json:"is_staying" gorm:"column:is_staying;default:true"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
