package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an admin account scoped to one tenant.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     string `gorm:"type:uuid;not null;index:idx_users_tenant_email,unique" json:"tenant_id"`
	Email        string `gorm:"type:varchar(255);not null;index:idx_users_tenant_email,unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         string `gorm:"type:varchar(50);not null;default:'admin'" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
