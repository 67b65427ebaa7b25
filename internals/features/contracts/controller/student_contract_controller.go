package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"devluck_backend/internals/features/contracts/dto"
	"devluck_backend/internals/features/contracts/model"
	userHelper "devluck_backend/internals/features/users/helper"
	userModel "devluck_backend/internals/features/users/model"
	helper "devluck_backend/internals/helpers"
)

type StudentContractController struct {
	DB *gorm.DB
}

func NewStudentContractController(db *gorm.DB) *StudentContractController {
	return &StudentContractController{DB: db}
}

// 🟢 GET /api/student/contracts?page=&pageSize=&status=
func (ctrl *StudentContractController) ListContracts(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	student, err := userHelper.GetStudentByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.ContractModel{}).
		Where("contract_student_id = ?", student.StudentID)
	if status := c.Query("status"); status != "" {
		q = q.Where("contract_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count student contracts: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list contracts")
	}

	var contracts []model.ContractModel
	if err := q.
		Order("contract_created_at DESC").
		Limit(p.PageSize).Offset(p.Offset).
		Find(&contracts).Error; err != nil {
		log.Printf("[ERROR] list student contracts: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list contracts")
	}

	return helper.Success(c, "ok", helper.BuildListData(dto.ToContractResponseList(contracts), total, p))
}

// 🟢 GET /api/student/contracts/:id  (detail + company summary)
func (ctrl *StudentContractController) GetContractByID(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract ID")
	}

	var contract model.ContractModel
	if err := ctrl.DB.First(&contract, "contract_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contract not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract")
	}
	if contract.ContractStudentID == nil || *contract.ContractStudentID != student.StudentID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. This contract does not belong to you.")
	}

	var company userModel.CompanyModel
	if err := ctrl.DB.First(&company, "company_id = ?", contract.ContractCompanyID).Error; err != nil {
		log.Printf("[ERROR] load contract company %s: %v", contract.ContractCompanyID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract")
	}

	return helper.Success(c, "ok", fiber.Map{
		"contract": dto.ToContractResponse(&contract),
		"company": fiber.Map{
			"id":       company.CompanyID,
			"name":     company.CompanyName,
			"logo":     company.CompanyLogo,
			"industry": company.CompanyIndustry,
			"location": company.CompanyLocation,
		},
	})
}
