package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status vocabulary terbuka (string), minimal nilai-nilai ini.
const (
	StatusRunning   = "Running"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusDisputed  = "Disputed"
)

type ContractModel struct {
	ContractID               uuid.UUID      `gorm:"column:contract_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"contract_id"`
	ContractTitle            string         `gorm:"column:contract_title;type:varchar(255);not null" json:"contract_title"`
	ContractStudentName      string         `gorm:"column:contract_student_name;type:varchar(255)" json:"contract_student_name"`
	ContractStudentEmail     string         `gorm:"column:contract_student_email;type:varchar(255);not null" json:"contract_student_email"`
	ContractNumber           string         `gorm:"column:contract_number;type:varchar(100);not null" json:"contract_number"`
	ContractList             pq.StringArray `gorm:"column:contract_list;type:text[]" json:"contract_list"` // butir-butir isi kontrak
	ContractCurrency         string         `gorm:"column:contract_currency;type:varchar(10);not null" json:"contract_currency"`
	ContractDuration         string         `gorm:"column:contract_duration;type:varchar(100);not null" json:"contract_duration"`
	ContractMonthlyAllowance float64        `gorm:"column:contract_monthly_allowance;not null" json:"contract_monthly_allowance"`
	ContractSalary           *float64       `gorm:"column:contract_salary" json:"contract_salary"`
	ContractWorkLocation     string         `gorm:"column:contract_work_location;type:varchar(255)" json:"contract_work_location"`
	ContractNote             *string        `gorm:"column:contract_note;type:text" json:"contract_note"`
	ContractStatus           string         `gorm:"column:contract_status;type:varchar(30);not null;index" json:"contract_status"`
	ContractCompanyID        uuid.UUID      `gorm:"column:contract_company_id;type:uuid;not null;index" json:"contract_company_id"`
	ContractStudentID        *uuid.UUID     `gorm:"column:contract_student_id;type:uuid;index" json:"contract_student_id"`
	ContractOpportunityID    *uuid.UUID     `gorm:"column:contract_opportunity_id;type:uuid" json:"contract_opportunity_id"`
	ContractCreatedAt        time.Time      `gorm:"column:contract_created_at;autoCreateTime" json:"contract_created_at"`
	ContractUpdatedAt        time.Time      `gorm:"column:contract_updated_at;autoUpdateTime" json:"contract_updated_at"`
}

func (ContractModel) TableName() string {
	return "contracts"
}
