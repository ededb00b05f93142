package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSize is one printable format of a product, e.g. "A4" or "90x50mm".
type ProductSize struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Label     string    `gorm:"column:label;not null"`
	WidthMM   *int      `gorm:"column:width_mm"`
	HeightMM  *int      `gorm:"column:height_mm"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
