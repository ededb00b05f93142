package assignments

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindQuote(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).Where("id = ?", quoteID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) FindLineItem(ctx context.Context, lineItemID uuid.UUID) (*models.QuoteLineItem, error) {
	var item models.QuoteLineItem
	err := r.db.WithContext(ctx).Where("id = ?", lineItemID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindLineItemsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteLineItem, error) {
	var items []models.QuoteLineItem
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateJob(ctx context.Context, job *models.SupplierJob) (*models.SupplierJob, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *repository) FindJob(ctx context.Context, jobID uuid.UUID) (*models.SupplierJob, error) {
	var job models.SupplierJob
	err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindActiveJobsByQuote(ctx context.Context, quoteID uuid.UUID) ([]models.SupplierJob, error) {
	var jobs []models.SupplierJob
	err := r.db.WithContext(ctx).
		Where("quote_id = ? AND status <> ?", quoteID, enums.JobStatusCancelled).
		Order("created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *repository) StampLineItemAssignment(ctx context.Context, lineItemID, supplierID uuid.UUID, cost decimal.Decimal, deliveryDays int) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteLineItem{}).
		Where("id = ?", lineItemID).
		Updates(map[string]any{
			"supplier_id":   supplierID,
			"supplier_cost": cost,
			"delivery_days": deliveryDays,
		}).Error
}

func (r *repository) ClearLineItemAssignment(ctx context.Context, lineItemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteLineItem{}).
		Where("id = ?", lineItemID).
		Updates(map[string]any{
			"supplier_id":   nil,
			"supplier_cost": nil,
			"delivery_days": nil,
		}).Error
}

func (r *repository) UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.SupplierJob{}).
		Where("id = ?", jobID).
		Updates(updates).Error
}

func (r *repository) UpdateQuoteStatus(ctx context.Context, quoteID uuid.UUID, status enums.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", quoteID).
		Update("status", status).Error
}
