package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/printdeskhq/printdesk-backend/internal/catalog"
	"github.com/printdeskhq/printdesk-backend/internal/performance"
	"github.com/printdeskhq/printdesk-backend/internal/pricing"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/printdeskhq/printdesk-backend/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// metricFetchConcurrency bounds the per-supplier metric fan-out.
const metricFetchConcurrency = 8

// Service computes ranked supplier recommendations grouped by category.
type Service interface {
	RecommendationsByCategory(ctx context.Context, input RecommendationInput) ([]CategoryRecommendation, error)
}

type service struct {
	classifier catalog.Classifier
	prices     pricing.Repository
	perf       performance.Aggregator
	settings   settings.Service
	logg       *logger.Logger
	engine     *metrics.EngineMetrics
}

// NewService builds the recommendation service.
func NewService(classifier catalog.Classifier, prices pricing.Repository, perf performance.Aggregator, settingsSvc settings.Service, logg *logger.Logger, engine *metrics.EngineMetrics) (Service, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier required")
	}
	if prices == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if perf == nil {
		return nil, fmt.Errorf("performance aggregator required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		classifier: classifier,
		prices:     prices,
		perf:       perf,
		settings:   settingsSvc,
		logg:       logg,
		engine:     engine,
	}, nil
}

type categoryGroup struct {
	categoryID   uuid.UUID
	categoryName string
	items        []CategoryItem
}

func (s *service) RecommendationsByCategory(ctx context.Context, input RecommendationInput) ([]CategoryRecommendation, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}
	for _, item := range input.Items {
		if item.LineItemID == uuid.Nil || item.UnitID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item id and unit id required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}

	started := time.Now()
	out, err := s.recommend(ctx, input)
	if err != nil {
		s.engine.ObserveScoringDuration("error", time.Since(started))
		return nil, err
	}
	s.engine.ObserveScoringDuration("success", time.Since(started))
	return out, nil
}

func (s *service) recommend(ctx context.Context, input RecommendationInput) ([]CategoryRecommendation, error) {
	if input.QuoteID != uuid.Nil {
		ctx = s.logg.WithQuoteID(ctx, input.QuoteID.String())
	}

	weights, err := s.resolveWeights(ctx, input.Weights)
	if err != nil {
		return nil, err
	}

	classifications, err := s.classifier.Classify(ctx, toItemRequests(input.Items))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "classify line items")
	}

	groups := groupByCategory(input.Items, classifications)
	if len(groups) == 0 {
		return []CategoryRecommendation{}, nil
	}

	type categoryCandidates struct {
		group        categoryGroup
		candidates   []coverageRecord
		fullCoverage bool
	}

	resolved := make([]categoryCandidates, 0, len(groups))
	supplierSet := map[uuid.UUID]bool{}

	for _, group := range groups {
		unitIDs := make([]uuid.UUID, 0, len(group.items))
		seen := map[uuid.UUID]bool{}
		for _, item := range group.items {
			if !seen[item.UnitID] {
				seen[item.UnitID] = true
				unitIDs = append(unitIDs, item.UnitID)
			}
		}

		pricesByUnit, err := s.prices.SupplierPricesFor(ctx, unitIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier prices")
		}

		records := buildCoverage(group.items, pricesByUnit)
		full, partial := partitionCoverage(records, len(group.items))

		var candidates []coverageRecord
		fullCoverage := len(full) > 0
		switch {
		case fullCoverage:
			candidates = full
			s.engine.IncCandidates("full", len(candidates))
		case len(partial) > 0:
			candidates = partialFallback(partial)
			s.engine.IncCandidates("partial", len(candidates))
		default:
			s.engine.IncCandidates("none", 0)
		}

		for _, rec := range candidates {
			supplierSet[rec.supplierID] = true
		}
		resolved = append(resolved, categoryCandidates{group: group, candidates: candidates, fullCoverage: fullCoverage})
	}

	metricsBySupplier, err := s.fetchMetrics(ctx, supplierSet)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryRecommendation, 0, len(resolved))
	for _, rc := range resolved {
		out = append(out, CategoryRecommendation{
			CategoryID:   rc.group.categoryID,
			CategoryName: rc.group.categoryName,
			Items:        rc.group.items,
			Suppliers:    scoreCandidates(rc.candidates, metricsBySupplier, weights, rc.fullCoverage),
		})
	}
	return out, nil
}

func (s *service) resolveWeights(ctx context.Context, override *settings.Weights) (settings.Weights, error) {
	if override != nil {
		return *override, nil
	}
	weights, err := s.settings.ScoringWeights(ctx)
	if err != nil {
		return settings.Weights{}, err
	}
	return weights, nil
}

// fetchMetrics fans out the per-supplier history queries and merges results
// by supplier id. Completion order is irrelevant.
func (s *service) fetchMetrics(ctx context.Context, supplierSet map[uuid.UUID]bool) (map[uuid.UUID]performance.SupplierMetrics, error) {
	supplierIDs := make([]uuid.UUID, 0, len(supplierSet))
	for id := range supplierSet {
		supplierIDs = append(supplierIDs, id)
	}

	results := make([]performance.SupplierMetrics, len(supplierIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricFetchConcurrency)

	for i, id := range supplierIDs {
		i, id := i, id
		g.Go(func() error {
			m, err := s.perf.Metrics(gctx, id)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch supplier metrics")
	}

	merged := make(map[uuid.UUID]performance.SupplierMetrics, len(results))
	for _, m := range results {
		merged[m.SupplierID] = m
	}
	return merged, nil
}

func toItemRequests(items []ItemInput) []catalog.ItemRequest {
	out := make([]catalog.ItemRequest, len(items))
	for i, item := range items {
		out[i] = catalog.ItemRequest{
			LineItemID:  item.LineItemID,
			UnitID:      item.UnitID,
			Quantity:    item.Quantity,
			DisplayName: item.DisplayName,
		}
	}
	return out
}

// groupByCategory buckets items by the classifier's grouping key, preserving
// first-appearance order. Items the classifier skipped are dropped here too.
func groupByCategory(items []ItemInput, classifications map[uuid.UUID]catalog.UnitClassification) []categoryGroup {
	order := []uuid.UUID{}
	byCategory := map[uuid.UUID]*categoryGroup{}

	for _, item := range items {
		cls, ok := classifications[item.UnitID]
		if !ok {
			continue
		}

		group, ok := byCategory[cls.CategoryID]
		if !ok {
			group = &categoryGroup{categoryID: cls.CategoryID, categoryName: cls.CategoryName}
			byCategory[cls.CategoryID] = group
			order = append(order, cls.CategoryID)
		}
		group.items = append(group.items, CategoryItem{
			LineItemID:  item.LineItemID,
			UnitID:      item.UnitID,
			DisplayName: cls.ProductName,
			Quantity:    item.Quantity,
		})
	}

	out := make([]categoryGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *byCategory[id])
	}
	return out
}
