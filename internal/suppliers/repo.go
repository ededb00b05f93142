package suppliers

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a suppliers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// UpsertPrice keeps at most one live price per (supplier, unit) pair.
func (r *repository) UpsertPrice(ctx context.Context, price *models.SupplierPrice) error {
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_id"}, {Name: "priceable_unit_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price_per_unit", "delivery_days", "updated_at"}),
		}).
		Create(price).Error
}

func (r *repository) ListPricesBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPrice, error) {
	var prices []models.SupplierPrice
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) UnitExists(ctx context.Context, unitID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PriceableUnit{}).
		Where("id = ?", unitID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
