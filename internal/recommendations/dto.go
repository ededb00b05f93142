package recommendations

import (
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput is one quote line item submitted for recommendation.
type ItemInput struct {
	LineItemID  uuid.UUID `json:"lineItemId" validate:"required"`
	UnitID      uuid.UUID `json:"unitId" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,min=1"`
	DisplayName *string   `json:"displayName,omitempty"`
}

// RecommendationInput carries the items to score plus an optional weight
// override. When Weights is nil the stored configuration applies.
type RecommendationInput struct {
	QuoteID uuid.UUID
	Items   []ItemInput
	Weights *settings.Weights
}

// CategoryItem is one line item placed in a category grouping.
type CategoryItem struct {
	LineItemID  uuid.UUID `json:"lineItemId"`
	UnitID      uuid.UUID `json:"unitId"`
	DisplayName string    `json:"displayName"`
	Quantity    int       `json:"quantity"`
}

// CoveredItem is one line item a supplier can price, with its quoted terms.
type CoveredItem struct {
	LineItemID   uuid.UUID       `json:"lineItemId"`
	UnitID       uuid.UUID       `json:"unitId"`
	DisplayName  string          `json:"displayName"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	DeliveryDays int             `json:"deliveryDays"`
}

// SupplierScore is one ranked candidate for a category. Ephemeral: recomputed
// on every request, never persisted.
type SupplierScore struct {
	SupplierID      uuid.UUID       `json:"supplierId"`
	SupplierName    string          `json:"supplierName"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	MaxDeliveryDays int             `json:"maxDeliveryDays"`
	AvgDeliveryDays float64         `json:"avgDeliveryDays"`
	AvgRating       float64         `json:"avgRating"`
	ReliabilityPct  float64         `json:"reliabilityPct"`
	TotalScore      int             `json:"totalScore"`
	Rank            int             `json:"rank"`
	FullCoverage    bool            `json:"fullCoverage"`
	CanFulfill      []CoveredItem   `json:"canFulfill"`
}

// CategoryRecommendation groups the ranked suppliers for one category.
// Suppliers is empty, not nil-omitted, when nobody prices the category.
type CategoryRecommendation struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Items        []CategoryItem  `json:"items"`
	Suppliers    []SupplierScore `json:"suppliers"`
}
