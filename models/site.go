package models

import (
	"time"
)

// Site represents a telecom site (tower, shelter, relay station)
type Site struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Code      string    `json:"code" gorm:"size:50;uniqueIndex"`
	Address   string    `json:"address" gorm:"type:text"`
	City      string    `json:"city" gorm:"size:100"`
	Latitude  *float64  `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude *float64  `json:"longitude" gorm:"type:decimal(11,8)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Site model
func (Site) TableName() string {
	return "sites"
}
