package pricing

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) SupplierPricesFor(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID][]SupplierPriceRow, error) {
	if len(unitIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit ids required")
	}

	var rows []SupplierPriceRow
	err := r.db.WithContext(ctx).
		Table("supplier_prices").
		Select("supplier_prices.supplier_id, users.name AS supplier_name, supplier_prices.priceable_unit_id, supplier_prices.price_per_unit, supplier_prices.delivery_days").
		Joins("JOIN users ON users.id = supplier_prices.supplier_id").
		Where("supplier_prices.priceable_unit_id IN ?", unitIDs).
		Where("users.role = ? AND users.status = ?", enums.UserRoleSupplier, enums.UserStatusActive).
		Order("supplier_prices.priceable_unit_id, supplier_prices.supplier_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byUnit := make(map[uuid.UUID][]SupplierPriceRow, len(unitIDs))
	for _, row := range rows {
		byUnit[row.PriceableUnitID] = append(byUnit[row.PriceableUnitID], row)
	}
	return byUnit, nil
}
