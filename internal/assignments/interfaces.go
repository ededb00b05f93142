package assignments

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for assignment state.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error)
	FindLineItem(ctx context.Context, lineItemID uuid.UUID) (*models.QuoteLineItem, error)
	FindLineItemsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLineItem, error)
	CreateJob(ctx context.Context, job *models.SupplierJob) (*models.SupplierJob, error)
	FindJob(ctx context.Context, jobID uuid.UUID) (*models.SupplierJob, error)
	FindActiveJobsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.SupplierJob, error)
	StampLineItemAssignment(ctx context.Context, lineItemID, supplierID uuid.UUID, cost decimal.Decimal, deliveryDays int) error
	ClearLineItemAssignment(ctx context.Context, lineItemID uuid.UUID) error
	UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error
	UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status enums.QuoteStatus) error
}
