package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/printdeskhq/printdesk-backend/pkg/enums"
)

// SupplierJob is one production order handed to a supplier for a single
// quote line item. IsAccepted latches once the supplier confirms; after
// that the job can no longer be cancelled. Delivery data and rating remain
// mutable for back-office correction.
type SupplierJob struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID              uuid.UUID       `gorm:"column:quote_id;type:uuid;not null"`
	QuoteLineItemID      uuid.UUID       `gorm:"column:quote_line_item_id;type:uuid;not null"`
	SupplierID           uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null"`
	Status               enums.JobStatus `gorm:"column:status;type:job_status;not null;default:'pending'"`
	IsAccepted           bool            `gorm:"column:is_accepted;not null;default:false"`
	PromisedDeliveryDays int             `gorm:"column:promised_delivery_days;not null"`
	ActualDeliveryDays   *int            `gorm:"column:actual_delivery_days"`
	CourierConfirmed     bool            `gorm:"column:courier_confirmed;not null;default:false"`
	Rating               *int            `gorm:"column:rating"`
	ReadyAt              *time.Time      `gorm:"column:ready_at"`
	DeliveredAt          *time.Time      `gorm:"column:delivered_at"`
	CancelReason         *string         `gorm:"column:cancel_reason"`
	CancelledAt          *time.Time      `gorm:"column:cancelled_at"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
