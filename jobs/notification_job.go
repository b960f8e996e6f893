package jobs

import (
	"context"
	"log"
	"time"

	"fieldops-server/services"
)

// NotificationJob runs the maintenance and intervention scanners on a fixed
// interval. Scans within a tick run sequentially; a failed tick is logged
// and retried on the next one.
type NotificationJob struct {
	svc      *services.NotificationService
	interval time.Duration
	stopChan chan bool
}

// NewNotificationJob creates a new notification scan job
func NewNotificationJob(svc *services.NotificationService, interval time.Duration) *NotificationJob {
	return &NotificationJob{
		svc:      svc,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start begins the notification job
func (j *NotificationJob) Start() {
	go j.run()
	log.Printf("🚀 Notification job started (interval: %s)", j.interval)
}

// Stop stops the notification job
func (j *NotificationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Notification job stopped")
}

// run executes the scan loop
func (j *NotificationJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runScan()
		case <-j.stopChan:
			return
		}
	}
}

// runScan performs one scheduled scan pass
func (j *NotificationJob) runScan() {
	summary, err := j.svc.CheckNow(context.Background())
	if err != nil {
		log.Printf("❌ Scheduled notification scan failed: %v", err)
		return
	}

	if summary.TotalCreated() > 0 {
		log.Printf("⏰ Notification scan created %d notifications (%d maintenance, %d intervention)",
			summary.TotalCreated(), summary.MaintenanceCreated, summary.InterventionCreated)
	}
}

// RunNow triggers an out-of-band scan and returns once both scanners
// complete, for the manual "check now" endpoint
func (j *NotificationJob) RunNow(ctx context.Context) (services.ScanSummary, error) {
	return j.svc.CheckNow(ctx)
}
