package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"fieldops-server/models"
)

const dateDisplayFormat = "02 Jan 2006"

// ScanSummary reports how many notifications a scan run created
type ScanSummary struct {
	MaintenanceCreated  int `json:"maintenance_created"`
	InterventionCreated int `json:"intervention_created"`
}

// TotalCreated returns the combined count across both scanners
func (s ScanSummary) TotalCreated() int {
	return s.MaintenanceCreated + s.InterventionCreated
}

// NotificationService owns the scan pipeline: it loads source records,
// classifies their scheduled dates, deduplicates against existing
// notifications and persists + emails the new ones. The clock is injectable
// so tests drive deterministic scans.
type NotificationService struct {
	db        *gorm.DB
	email     EmailSender
	window    time.Duration
	recipient string
	now       func() time.Time
}

// NewNotificationService creates a notification service
func NewNotificationService(db *gorm.DB, email EmailSender, upcomingWindowDays int, recipient string) *NotificationService {
	return &NotificationService{
		db:        db,
		email:     email,
		window:    time.Duration(upcomingWindowDays) * 24 * time.Hour,
		recipient: recipient,
		now:       time.Now,
	}
}

// DB exposes the underlying handle for the query API handlers
func (s *NotificationService) DB() *gorm.DB {
	return s.db
}

// CheckNow runs both scanners sequentially and returns the created counts.
// Used by the scheduled job and the manual-trigger endpoint alike.
func (s *NotificationService) CheckNow(ctx context.Context) (ScanSummary, error) {
	var summary ScanSummary

	created, err := s.ScanMaintenances(ctx)
	summary.MaintenanceCreated = created
	if err != nil {
		return summary, fmt.Errorf("maintenance scan failed: %w", err)
	}

	created, err = s.ScanInterventions(ctx)
	summary.InterventionCreated = created
	if err != nil {
		return summary, fmt.Errorf("intervention scan failed: %w", err)
	}

	return summary, nil
}

// ScanMaintenances classifies every maintenance task and creates one
// notification per new (task, transition) pair. Returns how many were
// created.
func (s *NotificationService) ScanMaintenances(ctx context.Context) (int, error) {
	var maintenances []models.Maintenance
	if err := s.db.WithContext(ctx).
		Preload("Equipment").
		Preload("PerformedBy").
		Find(&maintenances).Error; err != nil {
		return 0, fmt.Errorf("failed to load maintenances: %w", err)
	}

	now := s.now()
	created := 0
	for _, m := range maintenances {
		state := ClassifyDueDate(m.ScheduledDate, m.IsTerminal(), now, s.window)
		if state == DueNone {
			continue
		}

		if m.Equipment.ID == 0 {
			log.Printf("⚠️ Skipping maintenance %d: equipment %d not found", m.ID, m.EquipmentID)
			continue
		}

		draft := notificationDraft{
			ScheduledDate: m.ScheduledDate,
			MaintenanceID: &m.ID,
			EquipmentID:   &m.EquipmentID,
		}
		technician := ""
		if m.PerformedBy != nil {
			technician = m.PerformedBy.FullName
		}
		when := m.ScheduledDate.Format(dateDisplayFormat)
		switch state {
		case DueUpcoming:
			draft.Type = models.NotificationMaintenanceUpcoming
			draft.Subject = fmt.Sprintf("Maintenance due soon: %s", m.Equipment.Name)
			draft.Message = fmt.Sprintf("Maintenance for equipment %s is scheduled on %s", m.Equipment.Name, when)
		case DueOverdue:
			draft.Type = models.NotificationMaintenanceOverdue
			draft.Subject = fmt.Sprintf("Maintenance overdue: %s", m.Equipment.Name)
			draft.Message = fmt.Sprintf("Maintenance for equipment %s was scheduled on %s and is now overdue", m.Equipment.Name, when)
		}
		if technician != "" {
			draft.Message += fmt.Sprintf(" (technician: %s)", technician)
		}

		ok, err := s.createAndDispatch(ctx, draft)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// ScanInterventions classifies every intervention and creates one
// notification per new (intervention, transition) pair
func (s *NotificationService) ScanInterventions(ctx context.Context) (int, error) {
	var interventions []models.Intervention
	if err := s.db.WithContext(ctx).
		Preload("Site").
		Find(&interventions).Error; err != nil {
		return 0, fmt.Errorf("failed to load interventions: %w", err)
	}

	now := s.now()
	created := 0
	for _, iv := range interventions {
		state := ClassifyDueDate(iv.PlannedDate, iv.IsTerminal(), now, s.window)
		if state == DueNone {
			continue
		}

		if iv.Site.ID == 0 {
			log.Printf("⚠️ Skipping intervention %d: site %d not found", iv.ID, iv.SiteID)
			continue
		}

		draft := notificationDraft{
			ScheduledDate:  iv.PlannedDate,
			InterventionID: &iv.ID,
		}
		when := iv.PlannedDate.Format(dateDisplayFormat)
		switch state {
		case DueUpcoming:
			draft.Type = models.NotificationInterventionUpcoming
			draft.Subject = fmt.Sprintf("Intervention due soon: %s", iv.Site.Name)
			draft.Message = fmt.Sprintf("Intervention at site %s is planned for %s", iv.Site.Name, when)
		case DueOverdue:
			draft.Type = models.NotificationInterventionMissed
			draft.Subject = fmt.Sprintf("Intervention missed: %s", iv.Site.Name)
			draft.Message = fmt.Sprintf("Intervention at site %s was planned for %s and has been missed", iv.Site.Name, when)
		}

		ok, err := s.createAndDispatch(ctx, draft)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// notificationDraft is a candidate notification built by a scanner before
// the dedup check
type notificationDraft struct {
	Type           models.NotificationType
	MaintenanceID  *uint
	InterventionID *uint
	EquipmentID    *uint
	Subject        string
	Message        string
	ScheduledDate  time.Time
}

// createAndDispatch runs the dedup guard, persists the notification and
// attempts delivery. Returns true when a new notification was created.
// An existing (source, type) pair is the steady-state case on every tick
// and is skipped silently.
func (s *NotificationService) createAndDispatch(ctx context.Context, draft notificationDraft) (bool, error) {
	exists, err := s.alreadyNotified(ctx, draft)
	if err != nil {
		return false, fmt.Errorf("dedup check failed: %w", err)
	}
	if exists {
		return false, nil
	}

	notification := models.Notification{
		Type:           draft.Type,
		MaintenanceID:  draft.MaintenanceID,
		InterventionID: draft.InterventionID,
		EquipmentID:    draft.EquipmentID,
		Message:        draft.Message,
		ScheduledDate:  draft.ScheduledDate,
		EmailTo:        s.recipient,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		// A concurrent scan won the race between our existence check and
		// this insert; the unique index made it harmless.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("⚠️ Duplicate notification suppressed for type %s", draft.Type)
			return false, nil
		}
		return false, fmt.Errorf("failed to create notification: %w", err)
	}

	// Best-effort delivery: a bounced email is a log line, never a failed
	// scan. The record keeps the in-app panel authoritative either way.
	htmlBody := fmt.Sprintf("<p>%s</p>", draft.Message)
	if err := s.email.Send(s.recipient, draft.Subject, draft.Message, htmlBody); err != nil {
		log.Printf("❌ Failed to send notification email for %s: %v", draft.Type, err)
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Update("sent", true).Error; err != nil {
		log.Printf("❌ Failed to flag notification %d as sent: %v", notification.ID, err)
	}

	log.Printf("🔔 Notification created: %s (id %d)", draft.Type, notification.ID)
	return true, nil
}

// alreadyNotified is the dedup guard: exact match on the populated source
// column plus the transition type, never on the source id alone
func (s *NotificationService) alreadyNotified(ctx context.Context, draft notificationDraft) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Notification{}).Where("type = ?", draft.Type)
	switch {
	case draft.MaintenanceID != nil:
		query = query.Where("maintenance_id = ?", *draft.MaintenanceID)
	case draft.InterventionID != nil:
		query = query.Where("intervention_id = ?", *draft.InterventionID)
	default:
		return false, fmt.Errorf("notification draft has no source reference")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetClock overrides the time source used for classification
func (s *NotificationService) SetClock(now func() time.Time) {
	s.now = now
}
