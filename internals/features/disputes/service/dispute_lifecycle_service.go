package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contractModel "devluck_backend/internals/features/contracts/model"
	"devluck_backend/internals/features/disputes/dto"
	"devluck_backend/internals/features/disputes/model"
	notifDTO "devluck_backend/internals/features/notifications/dto"
	notifModel "devluck_backend/internals/features/notifications/model"
	notifService "devluck_backend/internals/features/notifications/service"
	userModel "devluck_backend/internals/features/users/model"
)

// DisputeLifecycleService mengelola transisi dispute + kontrak dalam satu
// transaksi. Notifikasi dikirim setelah commit, best-effort.
type DisputeLifecycleService struct {
	DB       *gorm.DB
	Notifier notifService.Emitter
}

func NewDisputeLifecycleService(db *gorm.DB, notifier notifService.Emitter) *DisputeLifecycleService {
	return &DisputeLifecycleService{DB: db, Notifier: notifier}
}

// FileDispute membuat dispute Open atas kontrak milik student pemanggil dan
// menandai kontraknya Disputed. Row lock pada kontrak menserialisasi pengajuan
// bersamaan; hanya satu yang menang, sisanya Conflict.
func (s *DisputeLifecycleService) FileDispute(ctx context.Context, studentID, contractID uuid.UUID, req *dto.FileDisputeRequest) (*model.DisputeModel, error) {
	var dispute model.DisputeModel
	var contract contractModel.ContractModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&contract, "contract_id = ?", contractID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Contract not found")
			}
			return err
		}

		if contract.ContractStudentID == nil || *contract.ContractStudentID != studentID {
			return fiber.NewError(fiber.StatusForbidden, "Access denied. This contract does not belong to you.")
		}

		var active int64
		if err := tx.Model(&model.DisputeModel{}).
			Where("dispute_contract_id = ? AND dispute_status IN ?",
				contractID, []string{model.StatusOpen, model.StatusUnderReview}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fiber.NewError(fiber.StatusConflict, "An active dispute already exists for this contract")
		}

		dispute = model.DisputeModel{
			DisputeContractID:             contractID,
			DisputeStudentID:              studentID,
			DisputeCompanyID:              contract.ContractCompanyID,
			DisputeReason:                 req.Reason,
			DisputeNote:                   req.Note,
			DisputeStatus:                 model.StatusOpen,
			DisputePreviousContractStatus: contract.ContractStatus,
		}
		if err := tx.Create(&dispute).Error; err != nil {
			return err
		}

		return tx.Model(&contractModel.ContractModel{}).
			Where("contract_id = ?", contractID).
			Update("contract_status", contractModel.StatusDisputed).Error
	})
	if err != nil {
		return nil, asFiberError(err, "Failed to file dispute")
	}

	s.notifyCompanyUser(contract.ContractCompanyID, notifDTO.CreateNotificationInput{
		Type:    notifModel.TypeContractDispute,
		Title:   "Dispute filed",
		Message: fmt.Sprintf("A dispute was filed on contract %s (%s): %s", contract.ContractNumber, contract.ContractTitle, req.Reason),
		Metadata: map[string]any{
			"contractId": contract.ContractID,
			"disputeId":  dispute.DisputeID,
		},
	})
	return &dispute, nil
}

// UpdateStatus memindahkan dispute antar status non-terminal (Open/UnderReview).
// Kontrak tetap Disputed.
func (s *DisputeLifecycleService) UpdateStatus(ctx context.Context, companyID, disputeID uuid.UUID, target string) (*model.DisputeModel, error) {
	if target != model.StatusOpen && target != model.StatusUnderReview {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status must be Open or UnderReview")
	}

	var dispute model.DisputeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockOwnedDispute(tx, &dispute, companyID, disputeID); err != nil {
			return err
		}
		dispute.DisputeStatus = target
		return tx.Model(&model.DisputeModel{}).
			Where("dispute_id = ?", disputeID).
			Update("dispute_status", target).Error
	})
	if err != nil {
		return nil, asFiberError(err, "Failed to update dispute status")
	}

	s.notifyStudentUser(dispute.DisputeStudentID, notifDTO.CreateNotificationInput{
		Type:    notifModel.TypeDisputeUpdate,
		Title:   "Dispute status updated",
		Message: fmt.Sprintf("Your dispute is now %s", target),
		Metadata: map[string]any{
			"disputeId": dispute.DisputeID,
			"status":    target,
		},
	})
	return &dispute, nil
}

// Resolve menutup dispute sebagai Resolved dan memindahkan kontrak ke status
// baru pilihan company, atomik dalam satu transaksi.
func (s *DisputeLifecycleService) Resolve(ctx context.Context, companyID, actingUserID, disputeID uuid.UUID, req *dto.ResolveDisputeRequest) (*model.DisputeModel, error) {
	switch req.NewContractStatus {
	case contractModel.StatusRunning, contractModel.StatusCompleted, contractModel.StatusCancelled:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "newContractStatus must be Running, Completed, or Cancelled")
	}

	var dispute model.DisputeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockOwnedDispute(tx, &dispute, companyID, disputeID); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.DisputeModel{}).
			Where("dispute_id = ?", disputeID).
			Updates(map[string]interface{}{
				"dispute_status":      model.StatusResolved,
				"dispute_resolution":  req.Resolution,
				"dispute_resolved_by": actingUserID,
				"dispute_resolved_at": now,
			}).Error; err != nil {
			return err
		}
		dispute.DisputeStatus = model.StatusResolved
		dispute.DisputeResolution = &req.Resolution
		dispute.DisputeResolvedBy = &actingUserID
		dispute.DisputeResolvedAt = &now

		return tx.Model(&contractModel.ContractModel{}).
			Where("contract_id = ?", dispute.DisputeContractID).
			Update("contract_status", req.NewContractStatus).Error
	})
	if err != nil {
		return nil, asFiberError(err, "Failed to resolve dispute")
	}

	s.notifyStudentUser(dispute.DisputeStudentID, notifDTO.CreateNotificationInput{
		Type:    notifModel.TypeDisputeResolved,
		Title:   "Dispute resolved",
		Message: fmt.Sprintf("Your dispute has been resolved: %s", req.Resolution),
		Metadata: map[string]any{
			"disputeId":      dispute.DisputeID,
			"contractStatus": req.NewContractStatus,
		},
	})
	return &dispute, nil
}

// Reject menutup dispute sebagai Rejected dan mengembalikan status kontrak ke
// snapshot saat pengajuan (bila kontrak masih Disputed).
func (s *DisputeLifecycleService) Reject(ctx context.Context, companyID, actingUserID, disputeID uuid.UUID, req *dto.RejectDisputeRequest) (*model.DisputeModel, error) {
	var dispute model.DisputeModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockOwnedDispute(tx, &dispute, companyID, disputeID); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.DisputeModel{}).
			Where("dispute_id = ?", disputeID).
			Updates(map[string]interface{}{
				"dispute_status":      model.StatusRejected,
				"dispute_resolution":  req.Resolution,
				"dispute_resolved_by": actingUserID,
				"dispute_resolved_at": now,
			}).Error; err != nil {
			return err
		}
		dispute.DisputeStatus = model.StatusRejected
		dispute.DisputeResolution = &req.Resolution
		dispute.DisputeResolvedBy = &actingUserID
		dispute.DisputeResolvedAt = &now

		restored := dispute.DisputePreviousContractStatus
		if restored == "" {
			restored = contractModel.StatusRunning
		}
		return tx.Model(&contractModel.ContractModel{}).
			Where("contract_id = ? AND contract_status = ?",
				dispute.DisputeContractID, contractModel.StatusDisputed).
			Update("contract_status", restored).Error
	})
	if err != nil {
		return nil, asFiberError(err, "Failed to reject dispute")
	}

	s.notifyStudentUser(dispute.DisputeStudentID, notifDTO.CreateNotificationInput{
		Type:    notifModel.TypeDisputeRejected,
		Title:   "Dispute rejected",
		Message: fmt.Sprintf("Your dispute has been rejected: %s", req.Resolution),
		Metadata: map[string]any{
			"disputeId": dispute.DisputeID,
		},
	})
	return &dispute, nil
}

// lockOwnedDispute mengunci baris dispute milik company pemanggil dan
// memastikan belum terminal.
func (s *DisputeLifecycleService) lockOwnedDispute(tx *gorm.DB, dispute *model.DisputeModel, companyID, disputeID uuid.UUID) error {
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(dispute, "dispute_id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Dispute not found")
		}
		return err
	}
	if dispute.DisputeCompanyID != companyID {
		return fiber.NewError(fiber.StatusForbidden, "Access denied. This dispute does not belong to your company.")
	}
	if model.IsTerminal(dispute.DisputeStatus) {
		return fiber.NewError(fiber.StatusConflict, "Dispute is already "+dispute.DisputeStatus+" and can no longer be modified")
	}
	return nil
}

func (s *DisputeLifecycleService) notifyCompanyUser(companyID uuid.UUID, input notifDTO.CreateNotificationInput) {
	var company userModel.CompanyModel
	if err := s.DB.First(&company, "company_id = ?", companyID).Error; err != nil {
		log.Printf("[ERROR] resolve company %s for notification: %v", companyID, err)
		return
	}
	input.UserID = company.CompanyUserID
	s.Notifier.Enqueue(input)
}

func (s *DisputeLifecycleService) notifyStudentUser(studentID uuid.UUID, input notifDTO.CreateNotificationInput) {
	var student userModel.StudentModel
	if err := s.DB.First(&student, "student_id = ?", studentID).Error; err != nil {
		log.Printf("[ERROR] resolve student %s for notification: %v", studentID, err)
		return
	}
	input.UserID = student.StudentUserID
	s.Notifier.Enqueue(input)
}

// asFiberError meneruskan *fiber.Error apa adanya; error DB lain dibungkus 500.
func asFiberError(err error, fallback string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	log.Printf("[ERROR] %s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
