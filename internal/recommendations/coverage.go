package recommendations

import (
	"bytes"
	"sort"

	"github.com/printdeskhq/printdesk-backend/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartialFallbackLimit caps how many partial-coverage suppliers are promoted
// to candidates when no supplier covers a whole category.
const PartialFallbackLimit = 3

// coverageRecord accumulates what one supplier can price within a category.
// maxDeliveryDays is the binding constraint: all items in a category ship
// together, so the slowest covered item sets the delivery time.
type coverageRecord struct {
	supplierID      uuid.UUID
	supplierName    string
	items           []CoveredItem
	totalPrice      decimal.Decimal
	maxDeliveryDays int
}

// buildCoverage folds the per-unit price rows into per-supplier coverage
// records for one category's items.
func buildCoverage(items []CategoryItem, pricesByUnit map[uuid.UUID][]pricing.SupplierPriceRow) []coverageRecord {
	bySupplier := map[uuid.UUID]*coverageRecord{}

	for _, item := range items {
		for _, row := range pricesByUnit[item.UnitID] {
			rec, ok := bySupplier[row.SupplierID]
			if !ok {
				rec = &coverageRecord{
					supplierID:   row.SupplierID,
					supplierName: row.SupplierName,
					totalPrice:   decimal.Zero,
				}
				bySupplier[row.SupplierID] = rec
			}

			rec.items = append(rec.items, CoveredItem{
				LineItemID:   item.LineItemID,
				UnitID:       item.UnitID,
				DisplayName:  item.DisplayName,
				Quantity:     item.Quantity,
				PricePerUnit: row.PricePerUnit,
				DeliveryDays: row.DeliveryDays,
			})
			rec.totalPrice = rec.totalPrice.Add(row.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
			if row.DeliveryDays > rec.maxDeliveryDays {
				rec.maxDeliveryDays = row.DeliveryDays
			}
		}
	}

	records := make([]coverageRecord, 0, len(bySupplier))
	for _, rec := range bySupplier {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return lessSupplierID(records[i].supplierID, records[j].supplierID)
	})
	return records
}

// partitionCoverage splits records into suppliers covering every item versus
// a strict subset. itemCount is the number of items in the category.
func partitionCoverage(records []coverageRecord, itemCount int) (full, partial []coverageRecord) {
	for _, rec := range records {
		if len(rec.items) == itemCount {
			full = append(full, rec)
		} else {
			partial = append(partial, rec)
		}
	}
	return full, partial
}

// partialFallback is the degraded-mode candidate policy: when no supplier
// covers a whole category, the operator is still shown the suppliers covering
// the most items, capped at PartialFallbackLimit. Ordered by items covered
// descending, then supplier id ascending.
func partialFallback(partial []coverageRecord) []coverageRecord {
	ranked := make([]coverageRecord, len(partial))
	copy(ranked, partial)

	sort.Slice(ranked, func(i, j int) bool {
		if len(ranked[i].items) != len(ranked[j].items) {
			return len(ranked[i].items) > len(ranked[j].items)
		}
		return lessSupplierID(ranked[i].supplierID, ranked[j].supplierID)
	})

	if len(ranked) > PartialFallbackLimit {
		ranked = ranked[:PartialFallbackLimit]
	}
	return ranked
}

func lessSupplierID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
