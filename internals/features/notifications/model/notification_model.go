package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types dipakai lintas fitur (contract & dispute lifecycle)
const (
	TypeContractCreated = "CONTRACT_CREATED"
	TypeContractUpdated = "CONTRACT_UPDATED"
	TypeContractDeleted = "CONTRACT_DELETED"
	TypeContractDispute = "CONTRACT_DISPUTE"
	TypeDisputeUpdate   = "DISPUTE_UPDATE"
	TypeDisputeResolved = "DISPUTE_RESOLVED"
	TypeDisputeRejected = "DISPUTE_REJECTED"
)

type NotificationModel struct {
	NotificationID        uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID    uuid.UUID      `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationType      string         `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	NotificationTitle     string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage   string         `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationMetadata  datatypes.JSON `gorm:"column:notification_metadata;type:jsonb" json:"notification_metadata"`
	NotificationRead      bool           `gorm:"column:notification_read;not null;default:false" json:"notification_read"`
	NotificationReadAt    *time.Time     `gorm:"column:notification_read_at" json:"notification_read_at"`
	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
