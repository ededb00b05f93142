package suppliers

import (
	"context"
	"fmt"

	"github.com/printdeskhq/printdesk-backend/pkg/db/models"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the supplier price publishing service.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("suppliers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// PublishPrices upserts the supplier's price list as one batch.
func (s *service) PublishPrices(ctx context.Context, supplierID uuid.UUID, inputs []PriceInput) error {
	if supplierID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if len(inputs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices required")
	}
	for _, input := range inputs {
		if input.UnitID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unit id required")
		}
		if input.PricePerUnit.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price per unit must not be negative")
		}
		if input.DeliveryDays <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery days must be positive")
		}
	}

	ctx = s.logg.WithSupplierID(ctx, supplierID.String())

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, input := range inputs {
			exists, err := repo.UnitExists(ctx, input.UnitID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check priceable unit")
			}
			if !exists {
				return pkgerrors.New(pkgerrors.CodeNotFound, "priceable unit not found")
			}

			price := &models.SupplierPrice{
				SupplierID:      supplierID,
				PriceableUnitID: input.UnitID,
				PricePerUnit:    input.PricePerUnit,
				DeliveryDays:    input.DeliveryDays,
			}
			if err := repo.UpsertPrice(ctx, price); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert supplier price")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(ctx, "supplier price list published")
	return nil
}

func (s *service) ListPrices(ctx context.Context, supplierID uuid.UUID) ([]models.SupplierPrice, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	prices, err := s.repo.ListPricesBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier prices")
	}
	return prices, nil
}
