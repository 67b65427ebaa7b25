package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"devluck_backend/internals/features/notifications/dto"
	"devluck_backend/internals/features/notifications/model"
	helper "devluck_backend/internals/helpers"
)

// Inbox notifikasi per user (student & company memakai surface yang sama,
// notifikasi di-keyed langsung ke user_id).
type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /notifications?page=&limit=&read=
func (ctrl *NotificationController) ListNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if read := c.Query("read"); read != "" {
		q = q.Where("notification_read = ?", read == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count notifications: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	var notifs []model.NotificationModel
	if err := q.
		Order("notification_created_at DESC").
		Limit(p.PageSize).Offset(p.Offset).
		Find(&notifs).Error; err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.Success(c, "ok", helper.BuildListData(dto.ToNotificationResponseList(notifs), total, p))
}

// 🟢 GET /notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var count int64
	if err := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_read = ?", userID, false).
		Count(&count).Error; err != nil {
		log.Printf("[ERROR] unread count: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	return helper.Success(c, "ok", fiber.Map{"count": count})
}

// 🟢 PUT /notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	var notif model.NotificationModel
	if err := ctrl.DB.First(&notif, "notification_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load notification")
	}

	if notif.NotificationUserID != userID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. This notification does not belong to you.")
	}

	now := time.Now()
	if err := ctrl.DB.Model(&notif).Updates(map[string]interface{}{
		"notification_read":    true,
		"notification_read_at": now,
	}).Error; err != nil {
		log.Printf("[ERROR] mark notification read: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to mark notification as read")
	}

	notif.NotificationRead = true
	notif.NotificationReadAt = &now
	return helper.Success(c, "Notification marked as read", dto.ToNotificationResponse(&notif))
}

// 🟢 PUT /notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_read = ?", userID, false).
		Updates(map[string]interface{}{
			"notification_read":    true,
			"notification_read_at": time.Now(),
		}).Error; err != nil {
		log.Printf("[ERROR] mark all notifications read: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to mark all notifications as read")
	}

	return helper.Success(c, "All notifications marked as read", nil)
}
