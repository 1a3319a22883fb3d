package models

import (
	"strings"
	"time"
)

// ProductType classifies a sold product for default component slots.
type ProductType string

const (
	ProductDrink  ProductType = "drink"
	ProductPastry ProductType = "pastry"
	ProductOther  ProductType = "other"
)

// Component binds one recipe slot to an inventory item. Qty is expressed in
// Unit per product sold; Unit must be one the item declares (or its base).
type Component struct {
	ItemID string  `json:"item_id"`
	Qty    float64 `json:"qty"`
	Unit   string  `json:"unit,omitempty"`
}

// Comps holds the per-product component slots. Nil slots are unused; a drink
// typically fills cup, lid, milk, espresso and syrup while a pastry fills bag.
type Comps struct {
	Cup      *Component `json:"cup,omitempty"`
	Lid      *Component `json:"lid,omitempty"`
	Milk     *Component `json:"milk,omitempty"`
	Espresso *Component `json:"espresso,omitempty"`
	Syrup    *Component `json:"syrup,omitempty"`
	Bag      *Component `json:"bag,omitempty"`
}

// All returns the non-nil components in slot order.
func (c Comps) All() []Component {
	var out []Component
	for _, p := range []*Component{c.Cup, c.Lid, c.Milk, c.Espresso, c.Syrup, c.Bag} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Bom is the bill of materials for one sold product, keyed by ProductKey.
type Bom struct {
	Key       string      `json:"key"`
	Name      string      `json:"name"`
	SKU       string      `json:"sku,omitempty"`
	Type      ProductType `json:"type"`
	Comps     Comps       `json:"comps"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ProductKey derives the map key for a sold product: the SKU when present,
// otherwise the lowercased trimmed name. Sales rows and recipes must agree
// on this derivation or consumption silently lands in the missing set.
func ProductKey(sku, name string) string {
	if s := strings.TrimSpace(sku); s != "" {
		return s
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// SlotCategories maps each component slot to the item categories an editor
// should offer first. Unmapped or empty matches fall back to the full
// catalog via Catalog.BySlot.
func SlotCategories(slot string) []string {
	switch slot {
	case "cup":
		return []string{"Cups"}
	case "lid":
		return []string{"Lids"}
	case "milk":
		return []string{"Milk"}
	case "espresso":
		return []string{"Beverage Base"}
	case "syrup":
		return []string{"House Syrups", "Syrups"}
	case "bag":
		return []string{"Packaging"}
	default:
		return nil
	}
}
