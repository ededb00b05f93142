package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/printdeskhq/printdesk-backend/pkg/enums"
)

// User represents any account that can sign in: back-office staff, admins,
// supplier contacts, and customers.
type User struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string           `gorm:"column:email;not null;uniqueIndex"`
	Name        string           `gorm:"column:name;not null"`
	Phone       *string          `gorm:"column:phone"`
	Role        enums.UserRole   `gorm:"column:role;type:user_role;not null"`
	Status      enums.UserStatus `gorm:"column:status;type:user_status;not null;default:'pending'"`
	CompanyName *string          `gorm:"column:company_name"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
