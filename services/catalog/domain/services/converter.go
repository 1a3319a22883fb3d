// Package services holds the catalog's pure domain services.
package services

import (
	"math"
	"sort"

	"github.com/ghuser/parstock/services/catalog/domain/models"
)

// Unit conversion between an item's base unit and its child units.
//
// Fail-soft policy: a missing item, a unit equal to base, or a zero,
// negative, or non-finite factor all convert as identity. An unknown factor
// cannot be projected safely, so the quantity passes through unscaled
// rather than crashing or producing NaN.

// DefaultUnit is used for items with no unit ladder at all.
const DefaultUnit = "each"

// ToBase converts qty expressed in unit into the item's base unit.
// The factor is child units per one base, so 30 sleeves at 12 per case
// is 2.5 cases.
func ToBase(it *models.Item, qty float64, unit string) float64 {
	per, ok := factor(it, unit)
	if !ok {
		return qty
	}
	return qty / per
}

// FromBase converts a base-unit quantity into the given display unit.
func FromBase(it *models.Item, baseQty float64, unit string) float64 {
	per, ok := factor(it, unit)
	if !ok {
		return baseQty
	}
	return baseQty * per
}

func factor(it *models.Item, unit string) (float64, bool) {
	if it == nil || it.Uom == nil {
		return 0, false
	}
	if unit == it.Uom.Base {
		return 0, false
	}
	per := it.Uom.PerBase[unit]
	if per <= 0 || math.IsInf(per, 0) || math.IsNaN(per) {
		return 0, false
	}
	return per, true
}

// UnitsFor enumerates the units an item can be counted in: declared child
// units in sorted order, then the base unit, de-duplicated. Items without a
// unit ladder count in DefaultUnit.
func UnitsFor(it *models.Item) []string {
	if it == nil || it.Uom == nil {
		return []string{DefaultUnit}
	}
	kids := make([]string, 0, len(it.Uom.PerBase))
	for u := range it.Uom.PerBase {
		kids = append(kids, u)
	}
	sort.Strings(kids)

	ordered := append(kids, it.Uom.Base)
	seen := make(map[string]bool, len(ordered))
	out := make([]string, 0, len(ordered))
	for _, u := range ordered {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	if len(out) == 0 {
		return []string{DefaultUnit}
	}
	return out
}

// DefaultUnitFor returns the first counting unit choice for an item.
func DefaultUnitFor(it *models.Item) string {
	return UnitsFor(it)[0]
}
