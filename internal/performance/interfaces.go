package performance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Neutral defaults for suppliers with no history. A new supplier is neither
// rewarded nor punished: perfect reliability, midpoint rating.
const (
	DefaultReliabilityPct = 100.0
	DefaultAvgRating      = 3.0
)

// ReliabilityMetric is the on-time share of jobs that reached the ready milestone.
type ReliabilityMetric struct {
	ReliabilityPct float64 `json:"reliabilityPct"`
	TotalReadyJobs int     `json:"totalReadyJobs"`
}

// RatingMetric is the mean of all recorded 1-5 job ratings.
type RatingMetric struct {
	AvgRating    float64 `json:"avgRating"`
	TotalRatings int     `json:"totalRatings"`
}

// SpeedMetric is the mean actual delivery days across delivered jobs.
type SpeedMetric struct {
	AvgDeliveryDays float64 `json:"avgDeliveryDays"`
}

// SupplierMetrics bundles the three historical metrics for one supplier.
type SupplierMetrics struct {
	SupplierID  uuid.UUID         `json:"supplierId"`
	Reliability ReliabilityMetric `json:"reliability"`
	Rating      RatingMetric      `json:"rating"`
	Speed       SpeedMetric       `json:"speed"`
}

// reliabilityRow / ratingRow / speedRow are typed aggregate query results.
type reliabilityRow struct {
	Total  int `gorm:"column:total"`
	OnTime int `gorm:"column:on_time"`
}

type ratingRow struct {
	Total int      `gorm:"column:total"`
	Avg   *float64 `gorm:"column:avg_rating"`
}

type speedRow struct {
	Total int      `gorm:"column:total"`
	Avg   *float64 `gorm:"column:avg_days"`
}

// Repository runs the three independent historical queries per supplier.
// Each applies its documented zero-history default rather than returning NaN.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Reliability(ctx context.Context, supplierID uuid.UUID) (ReliabilityMetric, error)
	Rating(ctx context.Context, supplierID uuid.UUID) (RatingMetric, error)
	Speed(ctx context.Context, supplierID uuid.UUID) (SpeedMetric, error)
}

// Aggregator fetches the bundled metrics for one supplier, caching results.
type Aggregator interface {
	Metrics(ctx context.Context, supplierID uuid.UUID) (SupplierMetrics, error)
}
