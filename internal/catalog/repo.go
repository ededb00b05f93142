package catalog

import (
	"context"

	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUnitDetails(ctx context.Context, unitIDs []uuid.UUID) ([]UnitDetailRow, error) {
	if len(unitIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit ids required")
	}

	var rows []UnitDetailRow
	err := r.db.WithContext(ctx).
		Table("priceable_units").
		Select("priceable_units.id AS unit_id, products.name AS product_name, product_sizes.label AS size_label, categories.id AS category_id, categories.name AS category_name").
		Joins("JOIN product_sizes ON product_sizes.id = priceable_units.size_id").
		Joins("JOIN products ON products.id = product_sizes.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("priceable_units.id IN ?", unitIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
