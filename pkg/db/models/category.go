package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for supplier recommendation purposes. Products
// without a category fall into the synthetic "General" group at read time.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
