package recommendations

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/printdeskhq/printdesk-backend/internal/catalog"
	"github.com/printdeskhq/printdesk-backend/internal/performance"
	"github.com/printdeskhq/printdesk-backend/internal/pricing"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/printdeskhq/printdesk-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubClassifier struct {
	out map[uuid.UUID]catalog.UnitClassification
	err error
}

func (s *stubClassifier) Classify(ctx context.Context, items []catalog.ItemRequest) (map[uuid.UUID]catalog.UnitClassification, error) {
	return s.out, s.err
}

type stubPricingRepo struct {
	byUnit map[uuid.UUID][]pricing.SupplierPriceRow
	err    error
}

func (s *stubPricingRepo) WithTx(tx *gorm.DB) pricing.Repository { return s }

func (s *stubPricingRepo) SupplierPricesFor(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID][]pricing.SupplierPriceRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[uuid.UUID][]pricing.SupplierPriceRow{}
	for _, id := range unitIDs {
		if rows, ok := s.byUnit[id]; ok {
			out[id] = rows
		}
	}
	return out, nil
}

type stubAggregator struct {
	metrics map[uuid.UUID]performance.SupplierMetrics
	err     error
}

func (s *stubAggregator) Metrics(ctx context.Context, supplierID uuid.UUID) (performance.SupplierMetrics, error) {
	if s.err != nil {
		return performance.SupplierMetrics{}, s.err
	}
	if m, ok := s.metrics[supplierID]; ok {
		return m, nil
	}
	return performance.SupplierMetrics{
		SupplierID:  supplierID,
		Reliability: performance.ReliabilityMetric{ReliabilityPct: performance.DefaultReliabilityPct},
		Rating:      performance.RatingMetric{AvgRating: performance.DefaultAvgRating},
		Speed:       performance.SpeedMetric{AvgDeliveryDays: 3},
	}, nil
}

type stubWeights struct {
	weights settings.Weights
	called  bool
}

func (s *stubWeights) ScoringWeights(ctx context.Context) (settings.Weights, error) {
	s.called = true
	return s.weights, nil
}

func (s *stubWeights) UpdateScoringWeights(ctx context.Context, w settings.Weights) error { return nil }

func recTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, classifier catalog.Classifier, prices pricing.Repository, perf performance.Aggregator, weights settings.Service) Service {
	t.Helper()
	svc, err := NewService(classifier, prices, perf, weights, recTestLogger(), metrics.NewEngineMetrics(nil))
	require.NoError(t, err)
	return svc
}

func classification(catID uuid.UUID, catName, product string, qty int) catalog.UnitClassification {
	return catalog.UnitClassification{CategoryID: catID, CategoryName: catName, ProductName: product, Quantity: qty}
}

func TestRecommendationsByCategory_FullCoveragePreferred(t *testing.T) {
	printing := uuid.New()
	u1 := uuid.New()
	u2 := uuid.New()
	s1 := uuid.New()
	s2 := uuid.New()
	li1 := uuid.New()
	li2 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(printing, "Printing", "Cards - 90x50", 1),
		u2: classification(printing, "Printing", "Flyers - A5", 1),
	}}
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{
		u1: {priceRow(s1, u1, "S1", "10", 2), priceRow(s2, u1, "S2", "5", 1)},
		u2: {priceRow(s1, u2, "S1", "15", 3)},
	}}
	weights := &stubWeights{weights: settings.DefaultWeights()}

	svc := newTestService(t, classifier, prices, &stubAggregator{}, weights)

	out, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: li1, UnitID: u1, Quantity: 1},
		{LineItemID: li2, UnitID: u2, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	cat := out[0]
	assert.Equal(t, printing, cat.CategoryID)
	assert.Equal(t, "Printing", cat.CategoryName)
	require.Len(t, cat.Items, 2)

	require.Len(t, cat.Suppliers, 1, "partial-coverage suppliers never mix into a full-coverage candidate set")
	top := cat.Suppliers[0]
	assert.Equal(t, s1, top.SupplierID)
	assert.True(t, top.FullCoverage)
	assert.Len(t, top.CanFulfill, 2)
	assert.Equal(t, 3, top.MaxDeliveryDays)
	assert.True(t, top.TotalPrice.Equal(dec("25")))
	assert.Equal(t, 1, top.Rank)
	assert.True(t, weights.called, "stored weights apply when no override given")
}

func TestRecommendationsByCategory_PartialFallback(t *testing.T) {
	printing := uuid.New()
	u1 := uuid.New()
	u2 := uuid.New()
	s2 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(printing, "Printing", "Cards", 1),
		u2: classification(printing, "Printing", "Flyers", 1),
	}}
	// nobody prices u2
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{
		u1: {priceRow(s2, u1, "S2", "5", 1)},
	}}

	svc := newTestService(t, classifier, prices, &stubAggregator{}, &stubWeights{weights: settings.DefaultWeights()})

	out, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: uuid.New(), UnitID: u1, Quantity: 1},
		{LineItemID: uuid.New(), UnitID: u2, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Suppliers, 1)
	assert.False(t, out[0].Suppliers[0].FullCoverage, "degraded candidates are visibly marked partial")
	assert.Len(t, out[0].Suppliers[0].CanFulfill, 1)
}

func TestRecommendationsByCategory_NoCoverageYieldsEmptySupplierList(t *testing.T) {
	general := uuid.Nil
	u1 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(general, catalog.GeneralCategoryName, "Mystery Item", 1),
	}}
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{}}

	svc := newTestService(t, classifier, prices, &stubAggregator{}, &stubWeights{weights: settings.DefaultWeights()})

	out, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: uuid.New(), UnitID: u1, Quantity: 1},
	}})
	require.NoError(t, err, "no coverage is a degraded result, not an error")
	require.Len(t, out, 1)
	assert.Equal(t, catalog.GeneralCategoryName, out[0].CategoryName)
	assert.NotNil(t, out[0].Suppliers)
	assert.Empty(t, out[0].Suppliers)
	assert.Len(t, out[0].Items, 1, "caller still receives the grouping for display")
}

func TestRecommendationsByCategory_SplitsCategories(t *testing.T) {
	printCat := uuid.New()
	signCat := uuid.New()
	u1 := uuid.New()
	u2 := uuid.New()
	s1 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(printCat, "Printing", "Cards", 1),
		u2: classification(signCat, "Signage", "Banner", 1),
	}}
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{
		u1: {priceRow(s1, u1, "S1", "10", 2)},
		u2: {priceRow(s1, u2, "S1", "90", 5)},
	}}

	svc := newTestService(t, classifier, prices, &stubAggregator{}, &stubWeights{weights: settings.DefaultWeights()})

	out, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: uuid.New(), UnitID: u1, Quantity: 1},
		{LineItemID: uuid.New(), UnitID: u2, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Printing", out[0].CategoryName, "categories keep first-appearance order")
	assert.Equal(t, "Signage", out[1].CategoryName)
	assert.Equal(t, 1, out[0].Suppliers[0].Rank)
	assert.Equal(t, 1, out[1].Suppliers[0].Rank, "each category ranks independently")
}

func TestRecommendationsByCategory_WeightOverrideSkipsSettings(t *testing.T) {
	printing := uuid.New()
	u1 := uuid.New()
	s1 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(printing, "Printing", "Cards", 1),
	}}
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{
		u1: {priceRow(s1, u1, "S1", "10", 2)},
	}}
	weights := &stubWeights{weights: settings.DefaultWeights()}

	svc := newTestService(t, classifier, prices, &stubAggregator{}, weights)

	override := settings.Weights{Price: 100}
	_, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{
		Items:   []ItemInput{{LineItemID: uuid.New(), UnitID: u1, Quantity: 1}},
		Weights: &override,
	})
	require.NoError(t, err)
	assert.False(t, weights.called)
}

func TestRecommendationsByCategory_Validation(t *testing.T) {
	svc := newTestService(t, &stubClassifier{}, &stubPricingRepo{}, &stubAggregator{}, &stubWeights{})

	_, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: uuid.New(), UnitID: uuid.New(), Quantity: 0},
	}})
	require.Error(t, err)
}

func TestRecommendationsByCategory_MetricFetchFailurePropagates(t *testing.T) {
	printing := uuid.New()
	u1 := uuid.New()
	s1 := uuid.New()

	classifier := &stubClassifier{out: map[uuid.UUID]catalog.UnitClassification{
		u1: classification(printing, "Printing", "Cards", 1),
	}}
	prices := &stubPricingRepo{byUnit: map[uuid.UUID][]pricing.SupplierPriceRow{
		u1: {priceRow(s1, u1, "S1", "10", 2)},
	}}

	svc := newTestService(t, classifier, prices, &stubAggregator{err: errors.New("db down")}, &stubWeights{weights: settings.DefaultWeights()})

	_, err := svc.RecommendationsByCategory(context.Background(), RecommendationInput{Items: []ItemInput{
		{LineItemID: uuid.New(), UnitID: u1, Quantity: 1},
	}})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
