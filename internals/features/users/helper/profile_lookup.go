package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "devluck_backend/internals/features/users/model"
)

// GetStudentByUserID mengambil profil student milik user login.
// 404 kalau profil belum dibuat (konsisten dengan response surface lain).
func GetStudentByUserID(db *gorm.DB, userID uuid.UUID) (*userModel.StudentModel, error) {
	var student userModel.StudentModel
	if err := db.First(&student, "student_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student profile not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load student profile")
	}
	return &student, nil
}

func GetCompanyByUserID(db *gorm.DB, userID uuid.UUID) (*userModel.CompanyModel, error) {
	var company userModel.CompanyModel
	if err := db.First(&company, "company_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Company profile not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load company profile")
	}
	return &company, nil
}
