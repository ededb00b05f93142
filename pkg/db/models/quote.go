package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/printdeskhq/printdesk-backend/pkg/enums"
)

// Quote is the aggregate root for a customer request. Its status is derived
// from line-item assignments while in the approved/in_production band.
type Quote struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteNumber int64             `gorm:"column:quote_number;not null"`
	CustomerID  *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	Status      enums.QuoteStatus `gorm:"column:status;type:quote_status;not null;default:'draft'"`
	Tags        pq.StringArray    `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Notes       *string           `gorm:"column:notes"`
	Items       []QuoteLineItem   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
