package settings

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ScoringWeightsKey is the settings row holding the weight configuration.
const ScoringWeightsKey = "scoring_weights"

// Weights is the four-dimension scoring weight configuration. By convention
// the values sum to 100, but the scoring engine normalizes by the actual sum
// and treats an all-zero configuration as equal weighting.
type Weights struct {
	Price        int `json:"price" validate:"min=0"`
	Rating       int `json:"rating" validate:"min=0"`
	DeliveryTime int `json:"deliveryTime" validate:"min=0"`
	Reliability  int `json:"reliability" validate:"min=0"`
}

// Sum returns the total of the four weights.
func (w Weights) Sum() int {
	return w.Price + w.Rating + w.DeliveryTime + w.Reliability
}

// DefaultWeights is the documented fallback when no configuration is stored.
func DefaultWeights() Weights {
	return Weights{Price: 40, Rating: 30, DeliveryTime: 20, Reliability: 10}
}

// Repository persists settings rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSetting(ctx context.Context, key string) (*models.Setting, error)
	UpsertSetting(ctx context.Context, key string, value string) error
}

// Service exposes the scoring weight configuration.
type Service interface {
	ScoringWeights(ctx context.Context) (Weights, error)
	UpdateScoringWeights(ctx context.Context, weights Weights) error
}
