package dto

import (
	"time"

	"github.com/google/uuid"

	"devluck_backend/internals/features/disputes/model"
)

// Reason/Resolution di-trim dulu di controller; required menolak yang kosong.
type FileDisputeRequest struct {
	Reason string  `json:"reason" validate:"required"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

type UpdateDisputeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open UnderReview"`
}

type ResolveDisputeRequest struct {
	Resolution        string `json:"resolution" validate:"required"`
	NewContractStatus string `json:"newContractStatus" validate:"required,oneof=Running Completed Cancelled"`
}

type RejectDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

type DisputeResponse struct {
	ID                     uuid.UUID  `json:"id"`
	ContractID             uuid.UUID  `json:"contractId"`
	StudentID              uuid.UUID  `json:"studentId"`
	CompanyID              uuid.UUID  `json:"companyId"`
	Reason                 string     `json:"reason"`
	Note                   *string    `json:"note,omitempty"`
	Status                 string     `json:"status"`
	Resolution             *string    `json:"resolution,omitempty"`
	ResolvedBy             *uuid.UUID `json:"resolvedBy,omitempty"`
	ResolvedAt             *string    `json:"resolvedAt,omitempty"`
	PreviousContractStatus string     `json:"previousContractStatus"`
	CreatedAt              string     `json:"createdAt"`
	UpdatedAt              string     `json:"updatedAt"`
}

type DisputeStatsResponse struct {
	Total       int64 `json:"total"`
	Open        int64 `json:"open"`
	UnderReview int64 `json:"underReview"`
	Resolved    int64 `json:"resolved"`
	Rejected    int64 `json:"rejected"`
	Pending     int64 `json:"pending"`
}

func ToDisputeResponse(m *model.DisputeModel) *DisputeResponse {
	resp := &DisputeResponse{
		ID:                     m.DisputeID,
		ContractID:             m.DisputeContractID,
		StudentID:              m.DisputeStudentID,
		CompanyID:              m.DisputeCompanyID,
		Reason:                 m.DisputeReason,
		Note:                   m.DisputeNote,
		Status:                 m.DisputeStatus,
		Resolution:             m.DisputeResolution,
		ResolvedBy:             m.DisputeResolvedBy,
		PreviousContractStatus: m.DisputePreviousContractStatus,
		CreatedAt:              m.DisputeCreatedAt.Format(time.RFC3339),
		UpdatedAt:              m.DisputeUpdatedAt.Format(time.RFC3339),
	}
	if m.DisputeResolvedAt != nil {
		s := m.DisputeResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &s
	}
	return resp
}

func ToDisputeResponseList(models []model.DisputeModel) []DisputeResponse {
	out := make([]DisputeResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToDisputeResponse(&models[i]))
	}
	return out
}
