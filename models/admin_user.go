package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"canchaclub-backend/utils"
)

// AdminUser is a dashboard operator. The first account is seeded at startup
// from ADMIN_USERNAME / ADMIN_PASSWORD.
type AdminUser struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `json:"nombre"`

	LastLogin *time.Time `json:"ultimo_login,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"activo"`

	gorm.Model `json:"-"`
}

func (AdminUser) TableName() string {
	return "usuarios_admin"
}

// Initialize UUID and hash the password before creating
func (u *AdminUser) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
