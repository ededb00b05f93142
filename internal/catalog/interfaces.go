package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneralCategoryName labels uncategorized products. The synthetic General
// category carries the zero uuid.
const GeneralCategoryName = "General"

// ItemRequest is one requested line item prior to classification.
type ItemRequest struct {
	LineItemID  uuid.UUID
	UnitID      uuid.UUID
	Quantity    int
	DisplayName *string
}

// UnitClassification resolves a priceable unit to its category grouping key.
type UnitClassification struct {
	CategoryID   uuid.UUID
	CategoryName string
	ProductName  string
	Quantity     int
}

// UnitDetailRow is the unit -> size -> product -> category join result.
type UnitDetailRow struct {
	UnitID       uuid.UUID  `gorm:"column:unit_id"`
	ProductName  string     `gorm:"column:product_name"`
	SizeLabel    string     `gorm:"column:size_label"`
	CategoryID   *uuid.UUID `gorm:"column:category_id"`
	CategoryName *string    `gorm:"column:category_name"`
}

// Repository resolves priceable units to their catalog context.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUnitDetails(ctx context.Context, unitIDs []uuid.UUID) ([]UnitDetailRow, error)
}
