package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"devluck_backend/internals/features/notifications/model"
)

// ================== REQUEST ==================
// CreateNotificationInput dipakai internal oleh emitter, bukan endpoint publik.
type CreateNotificationInput struct {
	UserID   uuid.UUID      `json:"userId" validate:"required"`
	Type     string         `json:"type" validate:"required"`
	Title    string         `json:"title" validate:"required"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata"`
}

// ================== RESPONSE ==================
type NotificationResponse struct {
	NotificationID uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Metadata       datatypes.JSON `json:"metadata,omitempty"`
	Read           bool           `json:"read"`
	ReadAt         *string        `json:"readAt,omitempty"`
	CreatedAt      string         `json:"createdAt"`
}

// ================ CONVERSION =================
func ToNotificationResponse(m *model.NotificationModel) *NotificationResponse {
	resp := &NotificationResponse{
		NotificationID: m.NotificationID,
		UserID:         m.NotificationUserID,
		Type:           m.NotificationType,
		Title:          m.NotificationTitle,
		Message:        m.NotificationMessage,
		Metadata:       m.NotificationMetadata,
		Read:           m.NotificationRead,
		CreatedAt:      m.NotificationCreatedAt.Format(time.RFC3339),
	}
	if m.NotificationReadAt != nil {
		s := m.NotificationReadAt.Format(time.RFC3339)
		resp.ReadAt = &s
	}
	return resp
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToNotificationResponse(&models[i]))
	}
	return result
}
