package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentModel struct {
	StudentID        uuid.UUID `gorm:"column:student_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"student_id"`
	StudentUserID    uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;index" json:"student_user_id"`
	StudentName      string    `gorm:"column:student_name;type:varchar(255);not null" json:"student_name"`
	StudentEmail     string    `gorm:"column:student_email;type:varchar(255);not null" json:"student_email"`
	StudentImage     *string   `gorm:"column:student_image;type:text" json:"student_image"` // URL, nullable
	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}
