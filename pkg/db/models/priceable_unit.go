package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceableUnit is the (product, size, quantity-tier) combination suppliers
// quote prices against. MinQuantity is the lower bound of the tier.
// Units are immutable once a supplier price references them.
type PriceableUnit struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SizeID      uuid.UUID    `gorm:"column:size_id;type:uuid;not null"`
	MinQuantity int          `gorm:"column:min_quantity;not null;default:1"`
	Size        *ProductSize `gorm:"foreignKey:SizeID"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
