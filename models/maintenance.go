package models

import (
	"time"
)

// MaintenanceStatus represents the current status of a maintenance task
type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// Maintenance represents a planned preventive maintenance task on a piece
// of equipment. The notification engine treats these rows as read-only.
type Maintenance struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	EquipmentID   uint              `json:"equipment_id" gorm:"not null"`
	Equipment     Equipment         `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Description   string            `json:"description" gorm:"type:text"`
	PerformedByID *uint             `json:"performed_by_id"`
	PerformedBy   *User             `json:"performed_by,omitempty" gorm:"foreignKey:PerformedByID"`
	Status        MaintenanceStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	ScheduledDate time.Time         `json:"scheduled_date" gorm:"not null"`
	CompletedAt   *time.Time        `json:"completed_at"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Maintenance model
func (Maintenance) TableName() string {
	return "maintenances"
}

// IsTerminal reports whether the task is permanently excluded from
// due-date classification
func (m *Maintenance) IsTerminal() bool {
	return m.Status == MaintenanceStatusCompleted
}
