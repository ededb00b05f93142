package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteLineItem is one requested unit on a quote. The supplier stamp
// (SupplierID, SupplierCost, DeliveryDays) is set by the assignment engine
// and cleared again on job cancellation; items are never deleted once the
// quote exists.
type QuoteLineItem struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID         uuid.UUID        `gorm:"column:quote_id;type:uuid;not null"`
	PriceableUnitID uuid.UUID        `gorm:"column:priceable_unit_id;type:uuid;not null"`
	DisplayName     *string          `gorm:"column:display_name"`
	Quantity        int              `gorm:"column:quantity;not null"`
	SupplierID      *uuid.UUID       `gorm:"column:supplier_id;type:uuid"`
	SupplierCost    *decimal.Decimal `gorm:"column:supplier_cost;type:numeric(12,2)"`
	DeliveryDays    *int             `gorm:"column:delivery_days"`
	Unit            *PriceableUnit   `gorm:"foreignKey:PriceableUnitID"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
