package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"devluck_backend/internals/features/notifications/controller"
)

// NotificationRoutes dipasang di group student maupun company.
func NotificationRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.ListNotifications)       // 🟢 inbox + pagination
	notification.Get("/unread-count", ctrl.UnreadCount) // 🟢 badge counter
	notification.Put("/read-all", ctrl.MarkAllAsRead)
	notification.Put("/:id/read", ctrl.MarkAsRead)
}
