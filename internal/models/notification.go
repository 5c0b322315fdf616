package models

import (
	"time"
)

// Notification represents the notifications table
type Notification struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Message   string    `json:"message" gorm:"column:message;type:text"`
	IsRead    bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
