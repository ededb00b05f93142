package catalog

import (
	"context"
	"fmt"

	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/google/uuid"
)

// Classifier maps requested line items to their owning category.
type Classifier interface {
	Classify(ctx context.Context, items []ItemRequest) (map[uuid.UUID]UnitClassification, error)
}

type classifier struct {
	repo Repository
	logg *logger.Logger
}

// NewClassifier builds a classifier over the catalog repository.
func NewClassifier(repo Repository, logg *logger.Logger) (Classifier, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &classifier{repo: repo, logg: logg}, nil
}

// Classify resolves each item's unit to {category, product, quantity}. Items
// whose unit id no longer resolves are skipped with a warning; one bad id
// never fails the batch. Uncategorized products fall back to General.
func (c *classifier) Classify(ctx context.Context, items []ItemRequest) (map[uuid.UUID]UnitClassification, error) {
	if len(items) == 0 {
		return map[uuid.UUID]UnitClassification{}, nil
	}

	unitIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.UnitID] {
			continue
		}
		seen[item.UnitID] = true
		unitIDs = append(unitIDs, item.UnitID)
	}

	rows, err := c.repo.FindUnitDetails(ctx, unitIDs)
	if err != nil {
		return nil, err
	}

	details := make(map[uuid.UUID]UnitDetailRow, len(rows))
	for _, row := range rows {
		details[row.UnitID] = row
	}

	out := make(map[uuid.UUID]UnitClassification, len(items))
	for _, item := range items {
		row, ok := details[item.UnitID]
		if !ok {
			lctx := c.logg.WithField(ctx, "unit_id", item.UnitID.String())
			c.logg.Warn(lctx, "skipping line item with unresolved priceable unit")
			continue
		}

		categoryID := uuid.Nil
		categoryName := GeneralCategoryName
		if row.CategoryID != nil {
			categoryID = *row.CategoryID
			if row.CategoryName != nil {
				categoryName = *row.CategoryName
			}
		}

		productName := fmt.Sprintf("%s - %s", row.ProductName, row.SizeLabel)
		if item.DisplayName != nil && *item.DisplayName != "" {
			productName = *item.DisplayName
		}

		out[item.UnitID] = UnitClassification{
			CategoryID:   categoryID,
			CategoryName: categoryName,
			ProductName:  productName,
			Quantity:     item.Quantity,
		}
	}
	return out, nil
}
