package models

import (
	"time"
)

// InterventionStatus represents the current status of a site intervention
type InterventionStatus string

const (
	InterventionStatusPlanned    InterventionStatus = "planned"
	InterventionStatusInProgress InterventionStatus = "in-progress"
	InterventionStatusCompleted  InterventionStatus = "completed"
	InterventionStatusCancelled  InterventionStatus = "cancelled"
)

// Intervention represents a corrective intervention planned on a site,
// typically raised from an alert. Read-only for the notification engine.
type Intervention struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	SiteID      uint               `json:"site_id" gorm:"not null"`
	Site        Site               `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	Description string             `json:"description" gorm:"type:text"`
	Status      InterventionStatus `json:"status" gorm:"type:varchar(20);not null;default:'planned'"`
	PlannedDate time.Time          `json:"planned_date" gorm:"not null"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TableName specifies the table name for the Intervention model
func (Intervention) TableName() string {
	return "interventions"
}

// IsTerminal reports whether the intervention is permanently excluded from
// due-date classification
func (i *Intervention) IsTerminal() bool {
	return i.Status == InterventionStatusCompleted || i.Status == InterventionStatusCancelled
}
