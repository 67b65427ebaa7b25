package model

import (
	"time"

	"github.com/google/uuid"
)

// OpportunityModel is the slim read-model used for ownership checks when a
// contract is derived from a posting. The full opportunity surface lives in a
// separate service.
type OpportunityModel struct {
	OpportunityID        uuid.UUID `gorm:"column:opportunity_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"opportunity_id"`
	OpportunityCompanyID uuid.UUID `gorm:"column:opportunity_company_id;type:uuid;not null;index" json:"opportunity_company_id"`
	OpportunityTitle     string    `gorm:"column:opportunity_title;type:varchar(255);not null" json:"opportunity_title"`
	OpportunityCreatedAt time.Time `gorm:"column:opportunity_created_at;autoCreateTime" json:"opportunity_created_at"`
}

func (OpportunityModel) TableName() string {
	return "opportunities"
}
