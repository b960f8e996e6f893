package models

import (
	"time"
)

// NotificationType identifies the exact transition a notification was
// created for. Together with the source id it forms the dedup key.
type NotificationType string

const (
	NotificationMaintenanceUpcoming  NotificationType = "maintenance_upcoming"
	NotificationMaintenanceOverdue   NotificationType = "maintenance_overdue"
	NotificationInterventionUpcoming NotificationType = "intervention_upcoming"
	NotificationInterventionMissed   NotificationType = "intervention_missed"
)

// Category returns the source kind the type belongs to
func (t NotificationType) Category() string {
	switch t {
	case NotificationMaintenanceUpcoming, NotificationMaintenanceOverdue:
		return "maintenance"
	case NotificationInterventionUpcoming, NotificationInterventionMissed:
		return "intervention"
	default:
		return ""
	}
}

// Urgency returns the time-window side of the type
func (t NotificationType) Urgency() string {
	switch t {
	case NotificationMaintenanceUpcoming, NotificationInterventionUpcoming:
		return "upcoming"
	case NotificationMaintenanceOverdue, NotificationInterventionMissed:
		return "overdue"
	default:
		return ""
	}
}

// Notification represents one detected due-date transition on a maintenance
// or intervention record. Exactly one of MaintenanceID / InterventionID is
// populated; the populated side is the category marker. The composite unique
// indexes enforce at most one notification per (source, type) pair so a
// concurrent scan cannot double-notify.
type Notification struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	Type           NotificationType `json:"type" gorm:"type:varchar(40);not null;uniqueIndex:idx_notifications_maintenance_type;uniqueIndex:idx_notifications_intervention_type"`
	MaintenanceID  *uint            `json:"maintenance_id" gorm:"uniqueIndex:idx_notifications_maintenance_type"`
	InterventionID *uint            `json:"intervention_id" gorm:"uniqueIndex:idx_notifications_intervention_type"`
	EquipmentID    *uint            `json:"equipment_id"`
	Equipment      *Equipment       `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	Message        string           `json:"message" gorm:"type:text;not null"`
	ScheduledDate  time.Time        `json:"scheduled_date" gorm:"not null"`
	EmailTo        string           `json:"email_to" gorm:"size:255"`
	Sent           bool             `json:"sent" gorm:"default:false"`
	Read           bool             `json:"read" gorm:"default:false"`
	ReadAt         *time.Time       `json:"read_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// MarkAsRead flips the read state once. Calling it on an already-read
// notification leaves ReadAt untouched.
func (n *Notification) MarkAsRead(now time.Time) {
	if n.Read {
		return
	}
	n.Read = true
	n.ReadAt = &now
}

// NotificationResponse is the wire shape returned by the query API. It adds
// the structured category/urgency pair so clients never have to
// pattern-match raw type strings.
type NotificationResponse struct {
	ID             uint             `json:"id"`
	Type           NotificationType `json:"type"`
	Category       string           `json:"category"`
	Urgency        string           `json:"urgency"`
	MaintenanceID  *uint            `json:"maintenance_id"`
	InterventionID *uint            `json:"intervention_id"`
	Equipment      *Equipment       `json:"equipment,omitempty"`
	Message        string           `json:"message"`
	ScheduledDate  time.Time        `json:"scheduled_date"`
	EmailTo        string           `json:"email_to"`
	Sent           bool             `json:"sent"`
	Read           bool             `json:"read"`
	ReadAt         *time.Time       `json:"read_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToResponse converts a notification to its API representation
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Category:       n.Type.Category(),
		Urgency:        n.Type.Urgency(),
		MaintenanceID:  n.MaintenanceID,
		InterventionID: n.InterventionID,
		Equipment:      n.Equipment,
		Message:        n.Message,
		ScheduledDate:  n.ScheduledDate,
		EmailTo:        n.EmailTo,
		Sent:           n.Sent,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}
