package recommendations

import (
	"math"
	"sort"

	"github.com/printdeskhq/printdesk-backend/internal/performance"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	"github.com/google/uuid"
)

// TopSuppliersPerCategory caps the ranked list returned per category.
const TopSuppliersPerCategory = 3

// degenerateScore is used for a dimension where all candidates are identical:
// ties neither reward nor punish, and min-max would divide by zero.
const degenerateScore = 50.0

// scoreCandidates blends price, delivery, rating and reliability into ranked
// supplier scores for one category's candidate set.
func scoreCandidates(candidates []coverageRecord, metricsBySupplier map[uuid.UUID]performance.SupplierMetrics, weights settings.Weights, fullCoverage bool) []SupplierScore {
	if len(candidates) == 0 {
		return []SupplierScore{}
	}

	prices := make([]float64, len(candidates))
	deliveries := make([]float64, len(candidates))
	for i, rec := range candidates {
		prices[i] = rec.totalPrice.InexactFloat64()
		deliveries[i] = float64(rec.maxDeliveryDays)
	}
	priceScores := minMaxScores(prices)
	deliveryScores := minMaxScores(deliveries)

	wPrice, wRating, wDelivery, wReliability := effectiveWeights(weights)

	scores := make([]SupplierScore, len(candidates))
	for i, rec := range candidates {
		m := metricsBySupplier[rec.supplierID]
		avgRating := m.Rating.AvgRating
		reliabilityPct := m.Reliability.ReliabilityPct
		if m.SupplierID == uuid.Nil {
			// metrics never fetched for this supplier, fall back to neutral
			avgRating = performance.DefaultAvgRating
			reliabilityPct = performance.DefaultReliabilityPct
		}

		ratingScore := avgRating / 5 * 100
		total := priceScores[i]*wPrice +
			ratingScore*wRating +
			deliveryScores[i]*wDelivery +
			reliabilityPct*wReliability

		scores[i] = SupplierScore{
			SupplierID:      rec.supplierID,
			SupplierName:    rec.supplierName,
			TotalPrice:      rec.totalPrice,
			MaxDeliveryDays: rec.maxDeliveryDays,
			AvgDeliveryDays: m.Speed.AvgDeliveryDays,
			AvgRating:       avgRating,
			ReliabilityPct:  reliabilityPct,
			TotalScore:      int(math.Round(total)),
			FullCoverage:    fullCoverage,
			CanFulfill:      rec.items,
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return lessSupplierID(scores[i].SupplierID, scores[j].SupplierID)
	})

	if len(scores) > TopSuppliersPerCategory {
		scores = scores[:TopSuppliersPerCategory]
	}
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// minMaxScores normalizes values to [0,100] where lower raw values score
// higher. An all-equal set yields the flat degenerate score.
func minMaxScores(values []float64) []float64 {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	scores := make([]float64, len(values))
	if max == min {
		for i := range scores {
			scores[i] = degenerateScore
		}
		return scores
	}
	for i, v := range values {
		scores[i] = 100 * (max - v) / (max - min)
	}
	return scores
}

// effectiveWeights converts the configured weights into fractional blend
// factors. A zero-sum configuration means no preference: equal weighting.
func effectiveWeights(w settings.Weights) (price, rating, delivery, reliability float64) {
	sum := w.Sum()
	if sum <= 0 {
		return 0.25, 0.25, 0.25, 0.25
	}
	total := float64(sum)
	return float64(w.Price) / total, float64(w.Rating) / total, float64(w.DeliveryTime) / total, float64(w.Reliability) / total
}
