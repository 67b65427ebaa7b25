package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"devluck_backend/internals/features/contracts/dto"
	"devluck_backend/internals/features/contracts/model"
	notifDTO "devluck_backend/internals/features/notifications/dto"
	notifModel "devluck_backend/internals/features/notifications/model"
	notifService "devluck_backend/internals/features/notifications/service"
	oppModel "devluck_backend/internals/features/opportunities/model"
	userHelper "devluck_backend/internals/features/users/helper"
	userModel "devluck_backend/internals/features/users/model"
	helper "devluck_backend/internals/helpers"
)

var validate = validator.New()

type CompanyContractController struct {
	DB       *gorm.DB
	Notifier notifService.Emitter
}

func NewCompanyContractController(db *gorm.DB, notifier notifService.Emitter) *CompanyContractController {
	return &CompanyContractController{DB: db, Notifier: notifier}
}

// 🟢 GET /company/contracts?page=&pageSize=&search=&status=
func (ctrl *CompanyContractController) ListContracts(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 10, 50)

	q := ctrl.DB.Model(&model.ContractModel{}).
		Where("contract_company_id = ?", company.CompanyID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("contract_title ILIKE ? OR contract_student_name ILIKE ? OR contract_number ILIKE ?", like, like, like)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("contract_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count company contracts: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list contracts")
	}

	var contracts []model.ContractModel
	if err := q.
		Order("contract_created_at DESC").
		Limit(p.PageSize).Offset(p.Offset).
		Find(&contracts).Error; err != nil {
		log.Printf("[ERROR] list company contracts: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list contracts")
	}

	return helper.Success(c, "ok", helper.BuildListData(dto.ToContractResponseList(contracts), total, p))
}

// 🟢 POST /company/contracts
func (ctrl *CompanyContractController) CreateContract(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// lookup student via user email
	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to look up student")
	}
	var student userModel.StudentModel
	if err := ctrl.DB.First(&student, "student_user_id = ?", user.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to look up student")
	}

	// ownership check kalau kontrak diturunkan dari opportunity
	if req.OpportunityID != nil {
		var opp oppModel.OpportunityModel
		if err := ctrl.DB.First(&opp, "opportunity_id = ?", *req.OpportunityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusNotFound, "Opportunity not found")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to look up opportunity")
		}
		if opp.OpportunityCompanyID != company.CompanyID {
			return helper.Error(c, fiber.StatusForbidden, "Access denied. This opportunity does not belong to your company.")
		}
	}

	studentName := req.Name
	if studentName == "" {
		studentName = student.StudentName
	}

	contract := req.ToModel(company.CompanyID, student.StudentID, studentName)
	if err := ctrl.DB.Create(contract).Error; err != nil {
		log.Printf("[ERROR] create contract: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create contract")
	}

	ctrl.Notifier.Enqueue(notifDTO.CreateNotificationInput{
		UserID:  user.UserID,
		Type:    notifModel.TypeContractCreated,
		Title:   "New contract created",
		Message: fmt.Sprintf("A contract %q has been created for you", contract.ContractTitle),
		Metadata: map[string]any{
			"contractId": contract.ContractID,
		},
	})

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Contract created", dto.ToContractResponse(contract))
}

// 🟢 GET /company/contracts/:id
func (ctrl *CompanyContractController) GetContractByID(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract ID")
	}

	var contract model.ContractModel
	if err := ctrl.DB.First(&contract, "contract_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contract not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract")
	}
	if contract.ContractCompanyID != company.CompanyID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. You do not own this contract")
	}

	return helper.Success(c, "ok", dto.ToContractResponse(&contract))
}

// 🟢 PUT /company/contracts/:id  (partial update)
func (ctrl *CompanyContractController) UpdateContract(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract ID")
	}

	var req dto.UpdateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var contract model.ContractModel
	if err := ctrl.DB.First(&contract, "contract_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contract not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract")
	}
	if contract.ContractCompanyID != company.CompanyID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. You do not own this contract")
	}

	updates := map[string]interface{}{}
	if req.ContractTitle != nil {
		updates["contract_title"] = *req.ContractTitle
	}
	if req.Name != nil {
		updates["contract_student_name"] = *req.Name
	}
	if req.Email != nil {
		updates["contract_student_email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.ContractNumber != nil {
		updates["contract_number"] = *req.ContractNumber
	}
	if req.ContractList != nil {
		updates["contract_list"] = pq.StringArray(*req.ContractList)
	}
	if req.Currency != nil {
		updates["contract_currency"] = *req.Currency
	}
	if req.Duration != nil {
		updates["contract_duration"] = *req.Duration
	}
	if req.MonthlyAllowance != nil {
		updates["contract_monthly_allowance"] = *req.MonthlyAllowance
	}
	if req.Salary != nil {
		updates["contract_salary"] = *req.Salary
	}
	if req.WorkLocation != nil {
		updates["contract_work_location"] = *req.WorkLocation
	}
	if req.Note != nil {
		updates["contract_note"] = *req.Note
	}
	if req.Status != nil {
		updates["contract_status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&contract).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] update contract %s: %v", id, err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to update contract")
		}
	}

	if contract.ContractStudentID != nil {
		statusSuffix := ""
		if req.Status != nil {
			statusSuffix = " - Status: " + *req.Status
		}
		ctrl.notifyStudent(*contract.ContractStudentID, notifDTO.CreateNotificationInput{
			Type:    notifModel.TypeContractUpdated,
			Title:   "Contract updated",
			Message: fmt.Sprintf("Your contract %q has been updated%s", contract.ContractTitle, statusSuffix),
			Metadata: map[string]any{
				"contractId": contract.ContractID,
			},
		})
	}

	return helper.Success(c, "Contract updated", dto.ToContractResponse(&contract))
}

// 🛑 DELETE /company/contracts/:id
func (ctrl *CompanyContractController) DeleteContract(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract ID")
	}

	var contract model.ContractModel
	if err := ctrl.DB.First(&contract, "contract_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Contract not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract")
	}
	if contract.ContractCompanyID != company.CompanyID {
		return helper.Error(c, fiber.StatusForbidden, "Access denied. You do not own this contract")
	}

	if err := ctrl.DB.Delete(&contract).Error; err != nil {
		log.Printf("[ERROR] delete contract %s: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete contract")
	}

	if contract.ContractStudentID != nil {
		ctrl.notifyStudent(*contract.ContractStudentID, notifDTO.CreateNotificationInput{
			Type:    notifModel.TypeContractDeleted,
			Title:   "Contract deleted",
			Message: fmt.Sprintf("Contract %q has been deleted", contract.ContractTitle),
		})
	}

	return helper.Success(c, "Contract deleted successfully", nil)
}

// 🟢 GET /company/contracts/stats
func (ctrl *CompanyContractController) GetContractStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	counts := map[string]int64{}
	for _, status := range []string{"", model.StatusRunning, model.StatusCompleted} {
		q := ctrl.DB.Model(&model.ContractModel{}).
			Where("contract_company_id = ?", company.CompanyID)
		if status != "" {
			q = q.Where("contract_status = ?", status)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			log.Printf("[ERROR] contract stats: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to get contract statistics")
		}
		counts[status] = n
	}

	total := counts[""]
	running := counts[model.StatusRunning]
	completed := counts[model.StatusCompleted]

	return helper.Success(c, "ok", fiber.Map{
		"total":     total,
		"running":   running,
		"completed": completed,
		"other":     total - running - completed,
	})
}

// 🟢 GET /company/contracts/employees
func (ctrl *CompanyContractController) GetEmployees(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	company, err := userHelper.GetCompanyByUserID(ctrl.DB, userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var contracts []model.ContractModel
	if err := ctrl.DB.
		Where("contract_company_id = ? AND contract_student_id IS NOT NULL", company.CompanyID).
		Order("contract_created_at DESC").
		Find(&contracts).Error; err != nil {
		log.Printf("[ERROR] list employees: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to get employees")
	}

	studentIDs := make([]uuid.UUID, 0, len(contracts))
	for i := range contracts {
		if contracts[i].ContractStudentID != nil {
			studentIDs = append(studentIDs, *contracts[i].ContractStudentID)
		}
	}

	studentsByID := map[uuid.UUID]userModel.StudentModel{}
	if len(studentIDs) > 0 {
		var students []userModel.StudentModel
		if err := ctrl.DB.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
			log.Printf("[ERROR] load employee students: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to get employees")
		}
		for i := range students {
			studentsByID[students[i].StudentID] = students[i]
		}
	}

	type employee struct {
		ID             uuid.UUID               `json:"id"`
		ContractTitle  string                  `json:"contractTitle"`
		ContractNumber string                  `json:"contractNumber"`
		Status         string                  `json:"status"`
		Student        *userModel.StudentModel `json:"student"`
	}

	employees := make([]employee, 0, len(contracts))
	for i := range contracts {
		e := employee{
			ID:             contracts[i].ContractID,
			ContractTitle:  contracts[i].ContractTitle,
			ContractNumber: contracts[i].ContractNumber,
			Status:         contracts[i].ContractStatus,
		}
		if contracts[i].ContractStudentID != nil {
			if st, ok := studentsByID[*contracts[i].ContractStudentID]; ok {
				e.Student = &st
			}
		}
		employees = append(employees, e)
	}

	return helper.Success(c, "ok", employees)
}

// notifyStudent resolves student → user lalu enqueue; kegagalan lookup cuma dicatat.
func (ctrl *CompanyContractController) notifyStudent(studentID uuid.UUID, input notifDTO.CreateNotificationInput) {
	var student userModel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", studentID).Error; err != nil {
		log.Printf("[ERROR] notify student lookup %s: %v", studentID, err)
		return
	}
	input.UserID = student.StudentUserID
	ctrl.Notifier.Enqueue(input)
}
