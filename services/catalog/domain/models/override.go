package models

// UomPatch is a sparse Uom override. A present Base replaces the underlying
// base unit; PerBase entries are merged into the underlying child table so
// adding one unit does not wipe the rest.
type UomPatch struct {
	Base    string             `json:"base,omitempty"`
	PerBase map[string]float64 `json:"per_base,omitempty"`
}

// Override is a sparse per-item patch layered over a seed or custom item.
// Present fields replace the base value, absent fields inherit. Par and
// ParUnit merge per location key; Locations replaces the list wholesale.
type Override struct {
	Name          *string            `json:"name,omitempty"`
	Category      *string            `json:"category,omitempty"`
	Supplier      *string            `json:"supplier,omitempty"`
	SKU           *string            `json:"sku,omitempty"`
	OrderMultiple *int               `json:"order_multiple,omitempty"`
	MakeOrBuy     *MakeBuy           `json:"make_or_buy,omitempty"`
	Locations     []string           `json:"locations,omitempty"`
	Uom           *UomPatch          `json:"uom,omitempty"`
	Par           map[string]float64 `json:"par,omitempty"`
	ParUnit       map[string]string  `json:"par_unit,omitempty"`
}

// IsZero reports whether the override patches nothing.
func (o Override) IsZero() bool {
	return o.Name == nil && o.Category == nil && o.Supplier == nil &&
		o.SKU == nil && o.OrderMultiple == nil && o.MakeOrBuy == nil &&
		o.Locations == nil && o.Uom == nil && o.Par == nil && o.ParUnit == nil
}

// Apply merges the override onto base and returns the resolved item.
// Base is not mutated; maps are copied before merging.
func (o Override) Apply(base Item) Item {
	out := base

	if o.Name != nil {
		out.Name = *o.Name
	}
	if o.Category != nil {
		out.Category = *o.Category
	}
	if o.Supplier != nil {
		out.Supplier = *o.Supplier
	}
	if o.SKU != nil {
		out.SKU = *o.SKU
	}
	if o.OrderMultiple != nil {
		out.OrderMultiple = *o.OrderMultiple
	}
	if o.MakeOrBuy != nil {
		out.MakeOrBuy = *o.MakeOrBuy
	}
	if o.Locations != nil {
		out.Locations = append([]string(nil), o.Locations...)
	}
	if o.Par != nil {
		merged := make(map[string]float64, len(base.Par)+len(o.Par))
		for k, v := range base.Par {
			merged[k] = v
		}
		for k, v := range o.Par {
			merged[k] = v
		}
		out.Par = merged
	}
	if o.ParUnit != nil {
		merged := make(map[string]string, len(base.ParUnit)+len(o.ParUnit))
		for k, v := range base.ParUnit {
			merged[k] = v
		}
		for k, v := range o.ParUnit {
			merged[k] = v
		}
		out.ParUnit = merged
	}
	if o.Uom != nil {
		resolved := Uom{Base: o.Uom.Base, PerBase: map[string]float64{}}
		if resolved.Base == "" {
			if base.Uom != nil && base.Uom.Base != "" {
				resolved.Base = base.Uom.Base
			} else {
				resolved.Base = "each"
			}
		}
		if base.Uom != nil {
			for k, v := range base.Uom.PerBase {
				resolved.PerBase[k] = v
			}
		}
		for k, v := range o.Uom.PerBase {
			resolved.PerBase[k] = v
		}
		out.Uom = &resolved
	}

	return out
}
