package models

import (
	"sort"
	"strings"
)

// Catalog is the immutable resolved item view: seed definitions, user-added
// custom items, and override patches merged into one list, hidden items
// filtered out. Build it with Resolve; never read the raw layers directly.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

// Resolve merges the catalog layers in order: seeds < custom < overrides,
// skipping hidden ids. Each item id appears at most once; a custom item
// sharing a seed id replaces the seed in place. An override whose target id
// does not exist is inert, no orphan item is synthesized.
func Resolve(seeds, custom []Item, overrides map[string]Override, hidden map[string]bool) Catalog {
	order := make([]string, 0, len(seeds)+len(custom))
	base := make(map[string]Item, len(seeds)+len(custom))
	for _, layer := range [][]Item{seeds, custom} {
		for _, it := range layer {
			if _, seen := base[it.ID]; !seen {
				order = append(order, it.ID)
			}
			base[it.ID] = it
		}
	}

	items := make([]Item, 0, len(order))
	byID := make(map[string]Item, len(order))
	for _, id := range order {
		if hidden[id] {
			continue
		}
		it := base[id]
		if ov, ok := overrides[id]; ok {
			it = ov.Apply(it)
		}
		items = append(items, it)
		byID[id] = it
	}
	return Catalog{items: items, byID: byID}
}

// CatalogFromItems rebuilds a Catalog from an already-resolved item list,
// used when restoring a cached snapshot.
func CatalogFromItems(items []Item) Catalog {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return Catalog{items: items, byID: byID}
}

// Items returns all resolved items in merge order.
func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of resolved items.
func (c Catalog) Len() int { return len(c.items) }

// ByID looks up a resolved item. ok is false for unknown or hidden ids.
func (c Catalog) ByID(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// ItemsForLocation returns the items tracked at the location, sorted by
// display name case-insensitively for stable list ordering.
func (c Catalog) ItemsForLocation(locKey string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.TrackedAt(locKey) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a == b {
			return out[i].Name < out[j].Name
		}
		return a < b
	})
	return out
}

// Categories returns the distinct non-empty categories, sorted.
func (c Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range c.items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out
}

// BySlot returns items whose category is in the given set. When the filter
// matches nothing the full catalog is returned, so a caller building a
// choice list is never left empty because of unmapped categories.
func (c Catalog) BySlot(categories ...string) []Item {
	want := make(map[string]bool, len(categories))
	for _, cat := range categories {
		want[cat] = true
	}
	var out []Item
	for _, it := range c.items {
		if it.Category != "" && want[it.Category] {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return c.Items()
	}
	return out
}

// Attribute field names accepted by MergeAttributes.
const (
	FieldSupplier      = "supplier"
	FieldSKU           = "sku"
	FieldOrderMultiple = "order_multiple"
	FieldMakeOrBuy     = "make_or_buy"
	FieldUom           = "uom"
)

// OperationalFields is the field set copied by "copy all": operational
// attributes only, never name or category.
var OperationalFields = []string{
	FieldSupplier, FieldSKU, FieldOrderMultiple, FieldMakeOrBuy, FieldUom,
}

// MergeAttributes builds an override patch that copies the named fields of
// src, for application onto another item. Unknown field names are ignored.
func MergeAttributes(src Item, fields ...string) Override {
	var ov Override
	for _, f := range fields {
		switch f {
		case FieldSupplier:
			v := src.Supplier
			ov.Supplier = &v
		case FieldSKU:
			v := src.SKU
			ov.SKU = &v
		case FieldOrderMultiple:
			v := src.OrderMultiple
			ov.OrderMultiple = &v
		case FieldMakeOrBuy:
			v := src.ReplenishBy()
			ov.MakeOrBuy = &v
		case FieldUom:
			if src.Uom != nil {
				per := make(map[string]float64, len(src.Uom.PerBase))
				for k, v := range src.Uom.PerBase {
					per[k] = v
				}
				ov.Uom = &UomPatch{Base: src.Uom.Base, PerBase: per}
			}
		}
	}
	return ov
}
