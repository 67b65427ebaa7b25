package model

import (
	"time"

	"github.com/google/uuid"
)

type CompanyModel struct {
	CompanyID        uuid.UUID `gorm:"column:company_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"company_id"`
	CompanyUserID    uuid.UUID `gorm:"column:company_user_id;type:uuid;not null;index" json:"company_user_id"`
	CompanyName      string    `gorm:"column:company_name;type:varchar(255);not null" json:"company_name"`
	CompanyLogo      *string   `gorm:"column:company_logo;type:text" json:"company_logo"` // URL, nullable
	CompanyIndustry  string    `gorm:"column:company_industry;type:varchar(100)" json:"company_industry"`
	CompanyLocation  string    `gorm:"column:company_location;type:varchar(255)" json:"company_location"`
	CompanyCreatedAt time.Time `gorm:"column:company_created_at;autoCreateTime" json:"company_created_at"`
	CompanyUpdatedAt time.Time `gorm:"column:company_updated_at;autoUpdateTime" json:"company_updated_at"`
}

func (CompanyModel) TableName() string {
	return "companies"
}
