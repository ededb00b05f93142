package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierPrice is a supplier's live price for one priceable unit. At most
// one row exists per (supplier, unit) pair; writes upsert in place.
type SupplierPrice struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID      uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null;uniqueIndex:idx_supplier_prices_supplier_unit"`
	PriceableUnitID uuid.UUID       `gorm:"column:priceable_unit_id;type:uuid;not null;uniqueIndex:idx_supplier_prices_supplier_unit"`
	PricePerUnit    decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	DeliveryDays    int             `gorm:"column:delivery_days;not null"`
	Supplier        *User           `gorm:"foreignKey:SupplierID"`
	Unit            *PriceableUnit  `gorm:"foreignKey:PriceableUnitID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
