package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"devluck_backend/internals/features/disputes/dto"
	"devluck_backend/internals/features/disputes/model"
	"devluck_backend/internals/features/disputes/service"
	userHelper "devluck_backend/internals/features/users/helper"
	helper "devluck_backend/internals/helpers"
)

var validate = validator.New()

type StudentDisputeController struct {
	DB      *gorm.DB
	Service *service.DisputeLifecycleService
}

func NewStudentDisputeController(db *gorm.DB, svc *service.DisputeLifecycleService) *StudentDisputeController {
	return &StudentDisputeController{DB: db, Service: svc}
}

// 🟢 POST /api/student/contracts/:contractId/dispute
func (ctrl *StudentDisputeController) FileDispute(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	student, err := userHelper.GetStudentByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	contractID, err := uuid.Parse(c.Params("contractId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract ID")
	}

	var req dto.FileDisputeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	dispute, err := ctrl.Service.FileDispute(c.UserContext(), student.StudentID, contractID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	log.Printf("[INFO] dispute %s filed on contract %s", dispute.DisputeID, contractID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Dispute filed", dto.ToDisputeResponse(dispute))
}

// 🟢 GET /api/student/disputes?page=&pageSize=&status=
func (ctrl *StudentDisputeController) ListDisputes(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	student, err := userHelper.GetStudentByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.DisputeModel{}).
		Where("dispute_student_id = ?", student.StudentID)
	if status := c.Query("status"); status != "" {
		q = q.Where("dispute_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count student disputes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list disputes")
	}

	var disputes []model.DisputeModel
	if err := q.
		Order("dispute_created_at DESC").
		Limit(p.PageSize).Offset(p.Offset).
		Find(&disputes).Error; err != nil {
		log.Printf("[ERROR] list student disputes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list disputes")
	}

	return helper.Success(c, "ok", helper.BuildListData(dto.ToDisputeResponseList(disputes), total, p))
}

// 🟢 GET /api/student/disputes/:id
func (ctrl *StudentDisputeController) GetDisputeByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	student, err := userHelper.GetStudentByUserID(ctrl.DB, userID)
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
	if dispute.DisputeStudentID != student.StudentID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. This dispute does not belong to you.")
	}

	return helper.Success(c, "ok", dto.ToDisputeResponse(&dispute))
}
