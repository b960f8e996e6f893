package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fieldops-server/models"
	"fieldops-server/services"
)

var notificationSvc *services.NotificationService

// RegisterNotificationRoutes wires the notification query API onto the
// given route group
func RegisterNotificationRoutes(rg *gin.RouterGroup, svc *services.NotificationService) {
	notificationSvc = svc

	rg.GET("", ListNotifications)
	rg.GET("/", ListNotifications)
	rg.GET("/unread-count", GetUnreadCount)
	rg.PUT("/read-all", MarkAllNotificationsAsRead)
	rg.PUT("/:id/read", MarkNotificationAsRead)
	rg.DELETE("/:id", DeleteNotification)
	rg.POST("/check", CheckNotifications)
}

// ListNotifications returns notifications filtered and paginated for the
// dashboard panels. Filters combine with logical AND; results are sorted by
// created_at descending.
func ListNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := notificationSvc.DB().Model(&models.Notification{})

	if readParam := c.Query("read"); readParam != "" {
		read, err := strconv.ParseBool(readParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid read filter",
			})
			return
		}
		query = query.Where("read = ?", read)
	}

	if notifType := c.Query("type"); notifType != "" {
		query = query.Where("type = ?", notifType)
	}

	if email := c.Query("email"); email != "" {
		query = query.Where("email_to = ?", email)
	}

	category := c.Query("notificationCategory")
	if category == "" {
		category = c.Query("category")
	}
	switch category {
	case "":
	case "maintenance":
		query = query.Where("maintenance_id IS NOT NULL")
	case "intervention":
		query = query.Where("intervention_id IS NOT NULL")
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid notification category",
		})
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("❌ Error counting notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch notifications",
		})
		return
	}

	var notifications []models.Notification
	if err := query.
		Preload("Equipment").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		log.Printf("❌ Error fetching notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch notifications",
		})
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, n.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": responses,
		"total":         total,
		"page":          page,
		"limit":         limit,
		"total_pages":   (total + int64(limit) - 1) / int64(limit),
	})
}

// GetUnreadCount returns the number of unread notifications, optionally
// filtered by recipient, for the dashboard badges
func GetUnreadCount(c *gin.Context) {
	query := notificationSvc.DB().
		Model(&models.Notification{}).
		Where("read = ?", false)

	if email := c.Query("email"); email != "" {
		query = query.Where("email_to = ?", email)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("❌ Error getting unread count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to get unread count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// MarkNotificationAsRead marks a single notification as read. Idempotent:
// marking an already-read notification again is a no-op with the same
// observable result.
func MarkNotificationAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid notification ID",
		})
		return
	}

	var notification models.Notification
	if err := notificationSvc.DB().First(&notification, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Notification not found",
			})
		} else {
			log.Printf("❌ Error finding notification: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Database error",
			})
		}
		return
	}

	if !notification.Read {
		notification.MarkAsRead(time.Now())
		if err := notificationSvc.DB().Save(&notification).Error; err != nil {
			log.Printf("❌ Error updating notification: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update notification",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"notification": notification.ToResponse(),
	})
}

// MarkAllNotificationsAsRead marks every unread notification as read,
// optionally filtered by recipient
func MarkAllNotificationsAsRead(c *gin.Context) {
	query := notificationSvc.DB().
		Model(&models.Notification{}).
		Where("read = ?", false)

	if email := c.Query("email"); email != "" {
		query = query.Where("email_to = ?", email)
	}

	if err := query.Updates(map[string]interface{}{
		"read":    true,
		"read_at": time.Now(),
	}).Error; err != nil {
		log.Printf("❌ Error marking all notifications as read: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to mark notifications as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked as read",
	})
}

// DeleteNotification removes a notification. Callers handle their own
// unread-count bookkeeping; no aggregate is returned.
func DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid notification ID",
		})
		return
	}

	var notification models.Notification
	if err := notificationSvc.DB().First(&notification, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Notification not found",
			})
		} else {
			log.Printf("❌ Error finding notification: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Database error",
			})
		}
		return
	}

	if err := notificationSvc.DB().Delete(&notification).Error; err != nil {
		log.Printf("❌ Error deleting notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete notification",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification deleted successfully",
	})
}

// CheckNotifications triggers an out-of-band scan and returns once both
// scanners complete
func CheckNotifications(c *gin.Context) {
	summary, err := notificationSvc.CheckNow(c.Request.Context())
	if err != nil {
		log.Printf("❌ Manual notification check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Notification check failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"maintenance_created":  summary.MaintenanceCreated,
		"intervention_created": summary.InterventionCreated,
		"total_created":        summary.TotalCreated(),
	})
}
