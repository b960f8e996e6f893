package models

import (
	"time"
)

// Equipment represents a piece of equipment installed on a site
// (antenna, rectifier, generator, air conditioning unit, ...)
type Equipment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Type      string    `json:"type" gorm:"size:100"`
	Serial    string    `json:"serial" gorm:"size:100"`
	SiteID    uint      `json:"site_id" gorm:"not null"`
	Site      Site      `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Equipment model
func (Equipment) TableName() string {
	return "equipments"
}
