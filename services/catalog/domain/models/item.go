package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MakeBuy classifies how an item is replenished: purchased from a supplier
// or produced in house. Made items net against stock everywhere; bought
// items net against warehouse stock only.
type MakeBuy string

const (
	MakeBuyMake MakeBuy = "make"
	MakeBuyBuy  MakeBuy = "buy"
)

// Uom describes an item's unit ladder: a base unit plus, per child unit,
// how many child units make up one base unit. A zero or absent factor means
// the conversion is unknown, not that the unit holds nothing.
type Uom struct {
	Base    string             `json:"base"`
	PerBase map[string]float64 `json:"per_base"`
}

// Item is a stock-keeping entity. Quantities and PARs are stored in the
// item's base unit; Par and ParUnit are keyed by location key.
type Item struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Category      string             `json:"category,omitempty"`
	Supplier      string             `json:"supplier,omitempty"`
	SKU           string             `json:"sku,omitempty"`
	OrderMultiple int                `json:"order_multiple,omitempty"`
	MakeOrBuy     MakeBuy            `json:"make_or_buy,omitempty"`
	Locations     []string           `json:"locations"`
	Uom           *Uom               `json:"uom,omitempty"`
	Par           map[string]float64 `json:"par,omitempty"`
	ParUnit       map[string]string  `json:"par_unit,omitempty"`
}

// ReplenishBy returns the make/buy classification, defaulting to buy.
func (i Item) ReplenishBy() MakeBuy {
	if i.MakeOrBuy == MakeBuyMake {
		return MakeBuyMake
	}
	return MakeBuyBuy
}

// ParAt returns the PAR target in base units for the location, 0 when unset.
func (i Item) ParAt(locKey string) float64 {
	return i.Par[locKey]
}

// TrackedAt reports whether the item is counted at the location.
func (i Item) TrackedAt(locKey string) bool {
	for _, k := range i.Locations {
		if k == locKey {
			return true
		}
	}
	return false
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug normalizes a name into a lowercase hyphenated identifier fragment.
func Slug(s string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// skuPrefixes maps categories to the prefix used for generated SKUs.
var skuPrefixes = map[string]string{
	"Cups": "CUPS", "Lids": "LIDS", "House Syrups": "SYR", "Syrups": "SYR",
	"Milk": "MILK", "Misc Bev": "MISC", "Packaging": "PKG", "Prepped Bev": "PREP",
	"Retail": "RTL", "Bev Supplies": "BSUP", "Cleaning Supplies": "CLEAN",
	"Consumables": "CONS", "Tea": "TEA", "Ingredients": "ING",
	"Supplies": "SUP", "Beverage Base": "BB",
}

// GenerateSKU derives a default SKU from the item's category and name.
func GenerateSKU(category, name string) string {
	pref, ok := skuPrefixes[category]
	if !ok {
		pref = "GEN"
	}
	code := strings.ReplaceAll(strings.ToUpper(Slug(name)), "-", "")
	if len(code) > 10 {
		code = code[:10]
	}
	return pref + "-" + code
}

// NewCustomItem constructs a user-added item with a generated id and SKU.
// Name and location validity are checked by the application layer.
func NewCustomItem(name, category string, locations []string) Item {
	name = strings.TrimSpace(name)
	id := "custom-" + Slug(name) + "-" + uuid.New().String()[:8]
	return Item{
		ID:        id,
		Name:      name,
		Category:  category,
		SKU:       GenerateSKU(category, name),
		MakeOrBuy: MakeBuyBuy,
		Locations: locations,
	}
}
