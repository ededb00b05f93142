package assignments

import (
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentItem is one line item the chosen supplier will produce, with the
// terms picked from the recommendation result.
type AssignmentItem struct {
	LineItemID   uuid.UUID       `json:"lineItemId" validate:"required"`
	UnitID       uuid.UUID       `json:"unitId" validate:"required"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	DeliveryDays int             `json:"deliveryDays" validate:"required,min=1"`
}

// AssignInput assigns one supplier to a batch of items within a quote.
type AssignInput struct {
	QuoteID    uuid.UUID
	SupplierID uuid.UUID        `json:"supplierId" validate:"required"`
	Items      []AssignmentItem `json:"items" validate:"required,min=1,dive"`
}

// AssignResult reports the created jobs and the quote status after the batch.
type AssignResult struct {
	Success     bool              `json:"success"`
	JobIDs      []uuid.UUID       `json:"jobIds"`
	QuoteStatus enums.QuoteStatus `json:"quoteStatus"`
}

// CancelResult reports a cancellation outcome.
type CancelResult struct {
	Success       bool `json:"success"`
	CancelledJobs int  `json:"cancelledJobs"`
	QuoteReverted bool `json:"quoteReverted"`
}

// JobCorrectionInput is the back-office patch surface for a supplier job.
// Nil fields are left untouched.
type JobCorrectionInput struct {
	Status               *enums.JobStatus `json:"status,omitempty"`
	IsAccepted           *bool            `json:"isAccepted,omitempty"`
	PromisedDeliveryDays *int             `json:"promisedDeliveryDays,omitempty" validate:"omitempty,min=1"`
	ActualDeliveryDays   *int             `json:"actualDeliveryDays,omitempty" validate:"omitempty,min=0"`
	CourierConfirmed     *bool            `json:"courierConfirmed,omitempty"`
	Rating               *int             `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
