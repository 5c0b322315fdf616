package models

import (
	"time"
)

// UserRole is the closed set of account roles
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleResident UserRole = "RESIDENT"
)

// Valid reports whether the role is a known value
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleResident:
		return true
	}
	return false
}

// UserStatus is the closed set of account statuses
type UserStatus string

const (
	UserActive UserStatus = "ACTIVE"
	UserLocked UserStatus = "LOCKED"
)

// User represents the users table
type User struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Username  string     `json:"username" gorm:"column:username;uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	FullName  string     `json:"full_name" gorm:"column:full_name"`
	Password  string     `json:"-" gorm:"column:password;not null"`
	Role      UserRole   `json:"role" gorm:"column:role;type:varchar(20);not null;default:'RESIDENT'"`
	Status    UserStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}
