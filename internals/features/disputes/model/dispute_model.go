package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen        = "Open"
	StatusUnderReview = "UnderReview"
	StatusResolved    = "Resolved"
	StatusRejected    = "Rejected"
)

// IsTerminal: Resolved dan Rejected tidak bisa diubah lagi.
func IsTerminal(status string) bool {
	return status == StatusResolved || status == StatusRejected
}

func IsActive(status string) bool {
	return status == StatusOpen || status == StatusUnderReview
}

type DisputeModel struct {
	DisputeID         uuid.UUID  `gorm:"column:dispute_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"dispute_id"`
	DisputeContractID uuid.UUID  `gorm:"column:dispute_contract_id;type:uuid;not null;index" json:"dispute_contract_id"`
	DisputeStudentID  uuid.UUID  `gorm:"column:dispute_student_id;type:uuid;not null;index" json:"dispute_student_id"`
	DisputeCompanyID  uuid.UUID  `gorm:"column:dispute_company_id;type:uuid;not null;index" json:"dispute_company_id"`
	DisputeReason     string     `gorm:"column:dispute_reason;type:text;not null" json:"dispute_reason"`
	DisputeNote       *string    `gorm:"column:dispute_note;type:text" json:"dispute_note"`
	DisputeStatus     string     `gorm:"column:dispute_status;type:varchar(20);not null;default:'Open';index" json:"dispute_status"`
	DisputeResolution *string    `gorm:"column:dispute_resolution;type:text" json:"dispute_resolution"`
	DisputeResolvedBy *uuid.UUID `gorm:"column:dispute_resolved_by;type:uuid" json:"dispute_resolved_by"`
	DisputeResolvedAt *time.Time `gorm:"column:dispute_resolved_at" json:"dispute_resolved_at"`

	// Snapshot status kontrak saat dispute diajukan. Reject mengembalikan
	// status kontrak ke nilai ini, bukan hardcode "Running".
	DisputePreviousContractStatus string `gorm:"column:dispute_previous_contract_status;type:varchar(30);not null" json:"dispute_previous_contract_status"`

	DisputeCreatedAt time.Time `gorm:"column:dispute_created_at;autoCreateTime" json:"dispute_created_at"`
	DisputeUpdatedAt time.Time `gorm:"column:dispute_updated_at;autoUpdateTime" json:"dispute_updated_at"`
}

func (DisputeModel) TableName() string {
	return "disputes"
}
