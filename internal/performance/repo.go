package performance

import (
	"context"

	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db                  *gorm.DB
	defaultDeliveryDays int
}

// NewRepository builds a performance repository. defaultDeliveryDays is the
// speed fallback for suppliers with no delivered jobs.
func NewRepository(db *gorm.DB, defaultDeliveryDays int) Repository {
	if defaultDeliveryDays <= 0 {
		defaultDeliveryDays = 3
	}
	return &repository{db: db, defaultDeliveryDays: defaultDeliveryDays}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx, defaultDeliveryDays: r.defaultDeliveryDays}
}

func (r *repository) Reliability(ctx context.Context, supplierID uuid.UUID) (ReliabilityMetric, error) {
	var row reliabilityRow
	err := r.db.WithContext(ctx).Raw(`
SELECT COUNT(*) AS total,
       COALESCE(SUM(CASE WHEN actual_delivery_days <= promised_delivery_days THEN 1 ELSE 0 END), 0) AS on_time
FROM supplier_jobs
WHERE supplier_id = ?
  AND status IN (?, ?, ?)
  AND actual_delivery_days IS NOT NULL`,
		supplierID,
		enums.JobStatusReady, enums.JobStatusPickedUp, enums.JobStatusDelivered,
	).Scan(&row).Error
	if err != nil {
		return ReliabilityMetric{}, err
	}

	if row.Total == 0 {
		return ReliabilityMetric{ReliabilityPct: DefaultReliabilityPct, TotalReadyJobs: 0}, nil
	}
	return ReliabilityMetric{
		ReliabilityPct: float64(row.OnTime) / float64(row.Total) * 100,
		TotalReadyJobs: row.Total,
	}, nil
}

func (r *repository) Rating(ctx context.Context, supplierID uuid.UUID) (RatingMetric, error) {
	var row ratingRow
	err := r.db.WithContext(ctx).Raw(`
SELECT COUNT(rating) AS total, AVG(rating) AS avg_rating
FROM supplier_jobs
WHERE supplier_id = ? AND rating IS NOT NULL`,
		supplierID,
	).Scan(&row).Error
	if err != nil {
		return RatingMetric{}, err
	}

	if row.Total == 0 || row.Avg == nil {
		return RatingMetric{AvgRating: DefaultAvgRating, TotalRatings: 0}, nil
	}
	return RatingMetric{AvgRating: *row.Avg, TotalRatings: row.Total}, nil
}

func (r *repository) Speed(ctx context.Context, supplierID uuid.UUID) (SpeedMetric, error) {
	var row speedRow
	err := r.db.WithContext(ctx).Raw(`
SELECT COUNT(*) AS total, AVG(actual_delivery_days) AS avg_days
FROM supplier_jobs
WHERE supplier_id = ? AND status = ? AND actual_delivery_days IS NOT NULL`,
		supplierID, enums.JobStatusDelivered,
	).Scan(&row).Error
	if err != nil {
		return SpeedMetric{}, err
	}

	if row.Total == 0 || row.Avg == nil {
		return SpeedMetric{AvgDeliveryDays: float64(r.defaultDeliveryDays)}, nil
	}
	return SpeedMetric{AvgDeliveryDays: *row.Avg}, nil
}
