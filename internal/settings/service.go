package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the settings service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// ScoringWeights loads the stored weight configuration, falling back to the
// documented default when the row is missing or unreadable.
func (s *service) ScoringWeights(ctx context.Context) (Weights, error) {
	setting, err := s.repo.FindSetting(ctx, ScoringWeightsKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultWeights(), nil
		}
		return Weights{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load scoring weights")
	}

	var weights Weights
	if err := json.Unmarshal([]byte(setting.Value), &weights); err != nil {
		s.logg.Warn(ctx, "stored scoring weights are unreadable, using defaults")
		return DefaultWeights(), nil
	}
	if weights.Price < 0 || weights.Rating < 0 || weights.DeliveryTime < 0 || weights.Reliability < 0 {
		s.logg.Warn(ctx, "stored scoring weights contain negative values, using defaults")
		return DefaultWeights(), nil
	}
	return weights, nil
}

func (s *service) UpdateScoringWeights(ctx context.Context, weights Weights) error {
	if weights.Price < 0 || weights.Rating < 0 || weights.DeliveryTime < 0 || weights.Reliability < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "weights must be non-negative")
	}

	payload, err := json.Marshal(weights)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode scoring weights")
	}
	if err := s.repo.UpsertSetting(ctx, ScoringWeightsKey, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store scoring weights")
	}
	return nil
}
