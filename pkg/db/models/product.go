package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a printable item (business cards, flyers, banners). The
// category link is optional; uncategorized products are grouped under the
// synthetic General category.
type Product struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID *uuid.UUID    `gorm:"column:category_id;type:uuid"`
	Name       string        `gorm:"column:name;not null"`
	IsActive   bool          `gorm:"column:is_active;not null;default:true"`
	Category   *Category     `gorm:"foreignKey:CategoryID"`
	Sizes      []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
