package models

import (
	"time"
)

// Log represents the logs table, an append-only audit record
type Log struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"user_id" gorm:"column:user_id;index"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action     string    `json:"action" gorm:"column:action;type:varchar(100);not null"`
	EntityType string    `json:"entity_type" gorm:"column:entity_type;type:varchar(50);not null"`
	EntityID   uint      `json:"entity_id" gorm:"column:entity_id;index"`
	Details    string    `json:"details" gorm:"column:details;type:text"`
	IPAddress  string    `json:"ip_address" gorm:"column:ip_address;type:varchar(45)"`
	UserAgent  string    `json:"user_agent" gorm:"column:user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the insert table name for Log
func (Log) TableName() string {
	return "logs"
}
