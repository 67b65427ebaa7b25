package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID        uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"user_id"`
	UserEmail     string    `gorm:"column:user_email;type:varchar(255);unique;not null" json:"user_email"`
	UserName      string    `gorm:"column:user_name;type:varchar(255)" json:"user_name"`
	UserRole      string    `gorm:"column:user_role;type:varchar(20);not null" json:"user_role"` // COMPANY | STUDENT
	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
