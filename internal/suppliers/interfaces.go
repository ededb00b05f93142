package suppliers

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceInput is one price a supplier publishes for a priceable unit.
type PriceInput struct {
	UnitID       uuid.UUID       `json:"unitId" validate:"required"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	DeliveryDays int             `json:"deliveryDays" validate:"required,min=1"`
}

// Repository persists supplier price rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertPrice(ctx context.Context, price *models.SupplierPrice) error
	ListPricesBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPrice, error)
	UnitExists(ctx context.Context, unitID uuid.UUID) (bool, error)
}

// Service is the supplier-facing price publishing surface.
type Service interface {
	PublishPrices(ctx context.Context, supplierID uuid.UUID, inputs []PriceInput) error
	ListPrices(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPrice, error)
}
