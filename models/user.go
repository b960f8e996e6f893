package models

import (
	"time"
)

type UserRole string

const (
	RoleTechnician UserRole = "technician"
	RoleManager    UserRole = "manager"
	RoleAdmin      UserRole = "admin"
)

// User represents a platform user. The notification engine only reads users
// to render technician names; account management lives elsewhere.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'technician';check:role IN ('technician','manager','admin')"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsTechnician checks if the user is a field technician
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician
}
