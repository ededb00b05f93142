package performance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	pkgredis "github.com/printdeskhq/printdesk-backend/pkg/redis"
	"github.com/google/uuid"
)

const metricsCacheScope = "supplier_metrics"

type metricsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope string, parts ...string) string
}

type aggregator struct {
	repo                Repository
	cache               metricsCache
	cacheTTL            time.Duration
	defaultDeliveryDays int
	logg                *logger.Logger
}

// NewAggregator builds the cached metrics aggregator. cache may be nil to
// disable caching (every call hits the database).
func NewAggregator(repo Repository, cache metricsCache, cacheTTL time.Duration, defaultDeliveryDays int, logg *logger.Logger) (Aggregator, error) {
	if repo == nil {
		return nil, fmt.Errorf("performance repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if defaultDeliveryDays <= 0 {
		defaultDeliveryDays = 3
	}
	return &aggregator{
		repo:                repo,
		cache:               cache,
		cacheTTL:            cacheTTL,
		defaultDeliveryDays: defaultDeliveryDays,
		logg:                logg,
	}, nil
}

// Metrics returns the supplier's bundled history. A failed individual query
// degrades to that metric's neutral default instead of aborting the scoring
// pass; only the degraded result is kept out of the cache.
func (a *aggregator) Metrics(ctx context.Context, supplierID uuid.UUID) (SupplierMetrics, error) {
	if cached, ok := a.fromCache(ctx, supplierID); ok {
		return cached, nil
	}

	ctx = a.logg.WithSupplierID(ctx, supplierID.String())
	metrics := SupplierMetrics{SupplierID: supplierID}
	degraded := false

	reliability, err := a.repo.Reliability(ctx, supplierID)
	if err != nil {
		a.logg.Error(ctx, "reliability query failed, using neutral default", err)
		reliability = ReliabilityMetric{ReliabilityPct: DefaultReliabilityPct}
		degraded = true
	}
	metrics.Reliability = reliability

	rating, err := a.repo.Rating(ctx, supplierID)
	if err != nil {
		a.logg.Error(ctx, "rating query failed, using neutral default", err)
		rating = RatingMetric{AvgRating: DefaultAvgRating}
		degraded = true
	}
	metrics.Rating = rating

	speed, err := a.repo.Speed(ctx, supplierID)
	if err != nil {
		a.logg.Error(ctx, "speed query failed, using configured default", err)
		speed = SpeedMetric{AvgDeliveryDays: float64(a.defaultDeliveryDays)}
		degraded = true
	}
	metrics.Speed = speed

	if !degraded {
		a.toCache(ctx, supplierID, metrics)
	}
	return metrics, nil
}

func (a *aggregator) fromCache(ctx context.Context, supplierID uuid.UUID) (SupplierMetrics, bool) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return SupplierMetrics{}, false
	}

	key := a.cache.CacheKey(metricsCacheScope, supplierID.String())
	raw, err := a.cache.Get(ctx, key)
	if err != nil {
		if err != pkgredis.Nil {
			a.logg.Warn(a.logg.WithSupplierID(ctx, supplierID.String()), "metrics cache read failed")
		}
		return SupplierMetrics{}, false
	}

	var metrics SupplierMetrics
	if err := json.Unmarshal([]byte(raw), &metrics); err != nil {
		return SupplierMetrics{}, false
	}
	return metrics, true
}

func (a *aggregator) toCache(ctx context.Context, supplierID uuid.UUID, metrics SupplierMetrics) {
	if a.cache == nil || a.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	key := a.cache.CacheKey(metricsCacheScope, supplierID.String())
	if err := a.cache.Set(ctx, key, payload, a.cacheTTL); err != nil {
		a.logg.Warn(a.logg.WithSupplierID(ctx, supplierID.String()), "metrics cache write failed")
	}
}
