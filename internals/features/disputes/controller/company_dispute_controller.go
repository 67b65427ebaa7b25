package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"devluck_backend/internals/features/disputes/dto"
	"devluck_backend/internals/features/disputes/model"
	"devluck_backend/internals/features/disputes/service"
	userHelper "devluck_backend/internals/features/users/helper"
	userModel "devluck_backend/internals/features/users/model"
	helper "devluck_backend/internals/helpers"
)

type CompanyDisputeController struct {
	DB      *gorm.DB
	Service *service.DisputeLifecycleService
}

func NewCompanyDisputeController(db *gorm.DB, svc *service.DisputeLifecycleService) *CompanyDisputeController {
	return &CompanyDisputeController{DB: db, Service: svc}
}

// 🟢 GET /company/disputes?page=&pageSize=&status=
func (ctrl *CompanyDisputeController) ListDisputes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.DisputeModel{}).
		Where("dispute_company_id = ?", company.CompanyID)
	if status := c.Query("status"); status != "" {
		q = q.Where("dispute_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count company disputes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list disputes")
	}

	var disputes []model.DisputeModel
	if err := q.
		Order("dispute_created_at DESC").
		Limit(p.PageSize).Offset(p.Offset).
		Find(&disputes).Error; err != nil {
		log.Printf("[ERROR] list company disputes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list disputes")
	}

	return helper.Success(c, "ok", helper.BuildListData(dto.ToDisputeResponseList(disputes), total, p))
}

// 🟢 GET /company/disputes/stats
func (ctrl *CompanyDisputeController) GetDisputeStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := ctrl.DB.Model(&model.DisputeModel{}).
		Select("dispute_status AS status, COUNT(*) AS count").
		Where("dispute_company_id = ?", company.CompanyID).
		Group("dispute_status").
		Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] dispute stats: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get dispute stats")
	}

	var stats dto.DisputeStatsResponse
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case model.StatusOpen:
			stats.Open = r.Count
		case model.StatusUnderReview:
			stats.UnderReview = r.Count
		case model.StatusResolved:
			stats.Resolved = r.Count
		case model.StatusRejected:
			stats.Rejected = r.Count
		}
	}
	stats.Pending = stats.Open + stats.UnderReview

	return helper.Success(c, "ok", stats)
}

// 🟢 GET /company/disputes/:id
func (ctrl *CompanyDisputeController) GetDisputeByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid dispute ID")
	}

	var dispute model.DisputeModel
	if err := ctrl.DB.First(&dispute, "dispute_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Dispute not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get dispute")
	}
	if dispute.DisputeCompanyID != company.CompanyID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. This dispute does not belong to your company.")
	}

	return helper.Success(c, "ok", dto.ToDisputeResponse(&dispute))
}

// 🟢 PUT /company/disputes/:id/status
func (ctrl *CompanyDisputeController) UpdateDisputeStatus(c *fiber.Ctx) error {
	company, disputeID, err := ctrl.resolveCompanyAndDispute(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateDisputeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	dispute, err := ctrl.Service.UpdateStatus(c.UserContext(), company.CompanyID, disputeID, req.Status)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Dispute status updated", dto.ToDisputeResponse(dispute))
}

// 🟢 PUT /company/disputes/:id/resolve
func (ctrl *CompanyDisputeController) ResolveDispute(c *fiber.Ctx) error {
	company, disputeID, err := ctrl.resolveCompanyAndDispute(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ResolveDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Resolution = strings.TrimSpace(req.Resolution)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	dispute, err := ctrl.Service.Resolve(c.UserContext(), company.CompanyID, company.CompanyUserID, disputeID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[INFO] dispute %s resolved, contract moved to %s", dispute.DisputeID, req.NewContractStatus)
	return helper.Success(c, "Dispute resolved", dto.ToDisputeResponse(dispute))
}

// 🟢 PUT /company/disputes/:id/reject
func (ctrl *CompanyDisputeController) RejectDispute(c *fiber.Ctx) error {
	company, disputeID, err := ctrl.resolveCompanyAndDispute(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RejectDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Resolution = strings.TrimSpace(req.Resolution)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	dispute, err := ctrl.Service.Reject(c.UserContext(), company.CompanyID, company.CompanyUserID, disputeID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Dispute rejected", dto.ToDisputeResponse(dispute))
}

func (ctrl *CompanyDisputeController) resolveCompanyAndDispute(c *fiber.Ctx) (*userModel.CompanyModel, uuid.UUID, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	disputeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid dispute ID")
	}
	return company, disputeID, nil
}
