package dto

import (
	"time"

	"github.com/google/uuid"

	"devluck_backend/internals/features/contracts/model"
)

// ================== REQUEST ==================
type CreateContractRequest struct {
	ContractTitle    string     `json:"contractTitle" validate:"required"`
	Email            string     `json:"email" validate:"required,email"`
	Name             string     `json:"name"`
	ContractNumber   string     `json:"contractNumber" validate:"required"`
	ContractList     []string   `json:"contractList"`
	Currency         string     `json:"currency" validate:"required"`
	Duration         string     `json:"duration" validate:"required"`
	MonthlyAllowance *float64   `json:"monthlyAllowance" validate:"required"`
	Salary           *float64   `json:"salary"`
	WorkLocation     string     `json:"workLocation"`
	Note             *string    `json:"note"`
	Status           string     `json:"status" validate:"required"`
	OpportunityID    *uuid.UUID `json:"opportunityId"`
}

// UpdateContractRequest: semua field opsional (partial update)
type UpdateContractRequest struct {
	ContractTitle    *string   `json:"contractTitle"`
	Name             *string   `json:"name"`
	Email            *string   `json:"email" validate:"omitempty,email"`
	ContractNumber   *string   `json:"contractNumber"`
	ContractList     *[]string `json:"contractList"`
	Currency         *string   `json:"currency"`
	Duration         *string   `json:"duration"`
	MonthlyAllowance *float64  `json:"monthlyAllowance"`
	Salary           *float64  `json:"salary"`
	WorkLocation     *string   `json:"workLocation"`
	Note             *string   `json:"note"`
	Status           *string   `json:"status"`
}

// ================== RESPONSE ==================
type ContractResponse struct {
	ContractID       uuid.UUID  `json:"id"`
	ContractTitle    string     `json:"contractTitle"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	ContractNumber   string     `json:"contractNumber"`
	ContractList     []string   `json:"contractList"`
	Currency         string     `json:"currency"`
	Duration         string     `json:"duration"`
	MonthlyAllowance float64    `json:"monthlyAllowance"`
	Salary           *float64   `json:"salary,omitempty"`
	WorkLocation     string     `json:"workLocation"`
	Note             *string    `json:"note,omitempty"`
	Status           string     `json:"status"`
	CompanyID        uuid.UUID  `json:"companyId"`
	StudentID        *uuid.UUID `json:"studentId,omitempty"`
	OpportunityID    *uuid.UUID `json:"opportunityId,omitempty"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}

// ================ CONVERSION =================
func (r *CreateContractRequest) ToModel(companyID, studentID uuid.UUID, studentName string) *model.ContractModel {
	m := &model.ContractModel{
		ContractTitle:         r.ContractTitle,
		ContractStudentName:   studentName,
		ContractStudentEmail:  r.Email,
		ContractNumber:        r.ContractNumber,
		ContractList:          r.ContractList,
		ContractCurrency:      r.Currency,
		ContractDuration:      r.Duration,
		ContractSalary:        r.Salary,
		ContractWorkLocation:  r.WorkLocation,
		ContractNote:          r.Note,
		ContractStatus:        r.Status,
		ContractCompanyID:     companyID,
		ContractStudentID:     &studentID,
		ContractOpportunityID: r.OpportunityID,
	}
	if r.MonthlyAllowance != nil {
		m.ContractMonthlyAllowance = *r.MonthlyAllowance
	}
	return m
}

func ToContractResponse(m *model.ContractModel) *ContractResponse {
	return &ContractResponse{
		ContractID:       m.ContractID,
		ContractTitle:    m.ContractTitle,
		Name:             m.ContractStudentName,
		Email:            m.ContractStudentEmail,
		ContractNumber:   m.ContractNumber,
		ContractList:     m.ContractList,
		Currency:         m.ContractCurrency,
		Duration:         m.ContractDuration,
		MonthlyAllowance: m.ContractMonthlyAllowance,
		Salary:           m.ContractSalary,
		WorkLocation:     m.ContractWorkLocation,
		Note:             m.ContractNote,
		Status:           m.ContractStatus,
		CompanyID:        m.ContractCompanyID,
		StudentID:        m.ContractStudentID,
		OpportunityID:    m.ContractOpportunityID,
		CreatedAt:        m.ContractCreatedAt.Format(time.RFC3339),
		UpdatedAt:        m.ContractUpdatedAt.Format(time.RFC3339),
	}
}

func ToContractResponseList(models []model.ContractModel) []ContractResponse {
	result := make([]ContractResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToContractResponse(&models[i]))
	}
	return result
}
