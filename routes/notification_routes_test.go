package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fieldops-server/config"
	"fieldops-server/models"
	"fieldops-server/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:notif_routes_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Site{},
		&models.Equipment{},
		&models.Maintenance{},
		&models.Intervention{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	email := services.NewSMTPEmailService(config.SMTPConfig{}) // disabled relay
	svc := services.NewNotificationService(db, email, 3, "ops@example.com")

	router := gin.New()
	group := router.Group("/api/v1/notifications")
	RegisterNotificationRoutes(group, svc)
	return router, db
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedNotification(t *testing.T, db *gorm.DB, notifType models.NotificationType, read bool) models.Notification {
	t.Helper()
	n := models.Notification{
		Type:          notifType,
		Message:       "test notification",
		ScheduledDate: time.Now().Add(24 * time.Hour),
		EmailTo:       "ops@example.com",
		Sent:          true,
		Read:          read,
	}
	if read {
		now := time.Now()
		n.ReadAt = &now
	}
	switch notifType.Category() {
	case "maintenance":
		id := uint(time.Now().UnixNano() % 1_000_000_000)
		n.MaintenanceID = &id
	case "intervention":
		id := uint(time.Now().UnixNano() % 1_000_000_000)
		n.InterventionID = &id
	}
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestListNotificationsPagination(t *testing.T) {
	router, db := setupTestRouter(t)
	for i := 0; i < 23; i++ {
		id := uint(i + 1)
		n := models.Notification{
			Type:          models.NotificationMaintenanceUpcoming,
			MaintenanceID: &id,
			Message:       fmt.Sprintf("notification %d", i),
			ScheduledDate: time.Now(),
			EmailTo:       "ops@example.com",
		}
		require.NoError(t, db.Create(&n).Error)
	}

	w := doRequest(router, http.MethodGet, "/api/v1/notifications?page=3&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 23, body["total"])
	assert.EqualValues(t, 3, body["total_pages"])
	assert.EqualValues(t, 3, body["page"])
	assert.Len(t, body["notifications"], 3)
}

func TestListNotificationsFilterComposition(t *testing.T) {
	router, db := setupTestRouter(t)
	seedNotification(t, db, models.NotificationMaintenanceUpcoming, false)
	seedNotification(t, db, models.NotificationMaintenanceOverdue, true)
	seedNotification(t, db, models.NotificationInterventionMissed, false)

	w := doRequest(router, http.MethodGet, "/api/v1/notifications?notificationCategory=maintenance&read=false")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["total"])
	notifications := body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, "maintenance_upcoming", first["type"])
	assert.Equal(t, "maintenance", first["category"])
	assert.Equal(t, "upcoming", first["urgency"])
	assert.Equal(t, false, first["read"])
	assert.NotNil(t, first["maintenance_id"])
}

func TestListNotificationsInvalidFilters(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/notifications?read=banana")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/notifications?notificationCategory=alerts")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkNotificationAsReadIsIdempotent(t *testing.T) {
	router, db := setupTestRouter(t)
	n := seedNotification(t, db, models.NotificationMaintenanceUpcoming, false)

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", n.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var first models.Notification
	require.NoError(t, db.First(&first, n.ID).Error)
	assert.True(t, first.Read)
	require.NotNil(t, first.ReadAt)
	readAt := *first.ReadAt

	w = doRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", n.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var second models.Notification
	require.NoError(t, db.First(&second, n.ID).Error)
	assert.True(t, second.Read)
	require.NotNil(t, second.ReadAt)
	assert.True(t, readAt.Equal(*second.ReadAt))
}

func TestMarkNotificationAsReadErrors(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/notifications/abc/read")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/api/v1/notifications/9999/read")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllNotificationsAsRead(t *testing.T) {
	router, db := setupTestRouter(t)
	seedNotification(t, db, models.NotificationMaintenanceUpcoming, false)
	seedNotification(t, db, models.NotificationInterventionUpcoming, false)
	seedNotification(t, db, models.NotificationMaintenanceOverdue, true)

	w := doRequest(router, http.MethodPut, "/api/v1/notifications/read-all")
	require.Equal(t, http.StatusOK, w.Code)

	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).Where("read = ?", false).Count(&unread).Error)
	assert.EqualValues(t, 0, unread)
}

func TestGetUnreadCount(t *testing.T) {
	router, db := setupTestRouter(t)
	seedNotification(t, db, models.NotificationMaintenanceUpcoming, false)
	seedNotification(t, db, models.NotificationInterventionMissed, false)
	seedNotification(t, db, models.NotificationMaintenanceOverdue, true)

	w := doRequest(router, http.MethodGet, "/api/v1/notifications/unread-count")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])
}

func TestDeleteNotification(t *testing.T) {
	router, db := setupTestRouter(t)
	n := seedNotification(t, db, models.NotificationInterventionUpcoming, false)

	w := doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", n.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	w = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", n.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/notifications/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckNotificationsEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	site := models.Site{Name: "North Tower", Code: "NKT-N01"}
	require.NoError(t, db.Create(&site).Error)
	equipment := models.Equipment{Name: "Rectifier Cabinet A", SiteID: site.ID}
	require.NoError(t, db.Create(&equipment).Error)
	maintenance := models.Maintenance{
		EquipmentID:   equipment.ID,
		Status:        models.MaintenanceStatusPending,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&maintenance).Error)

	w := doRequest(router, http.MethodPost, "/api/v1/notifications/check")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["maintenance_created"])
	assert.EqualValues(t, 0, body["intervention_created"])
	assert.EqualValues(t, 1, body["total_created"])

	// A second manual check is a dedup no-op
	w = doRequest(router, http.MethodPost, "/api/v1/notifications/check")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 0, body["total_created"])
}
