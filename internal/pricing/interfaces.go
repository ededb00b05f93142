package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplierPriceRow is one published price from an active supplier for one unit.
type SupplierPriceRow struct {
	SupplierID      uuid.UUID       `gorm:"column:supplier_id"`
	SupplierName    string          `gorm:"column:supplier_name"`
	PriceableUnitID uuid.UUID       `gorm:"column:priceable_unit_id"`
	PricePerUnit    decimal.Decimal `gorm:"column:price_per_unit"`
	DeliveryDays    int             `gorm:"column:delivery_days"`
}

// Repository resolves published supplier prices for priceable units.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// SupplierPricesFor returns, per requested unit id, every price published by
	// an active supplier account. Units nobody prices are absent from the map.
	SupplierPricesFor(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID][]SupplierPriceRow, error)
}
