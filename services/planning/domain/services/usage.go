package services

import (
	"math"
	"sort"

	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
	catalogsvcs "github.com/ghuser/parstock/services/catalog/domain/services"
	"github.com/ghuser/parstock/services/planning/domain/models"
)

// SoldProduct is one aggregated sales line: a product key with the total
// quantity sold over the reporting window.
type SoldProduct struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

// MissingProduct is a sold product with no recipe on file. Its consumption
// is zero, never guessed.
type MissingProduct struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

// Consumption explodes sales through recipes into per-item base-unit usage.
// Each component quantity converts to the item's base unit before scaling by
// units sold. Products without a recipe land in the missing list instead of
// contributing usage.
func Consumption(sales []SoldProduct, boms map[string]models.Bom, catalog catalogmodels.Catalog) (map[string]float64, []MissingProduct) {
	usage := map[string]float64{}
	var missing []MissingProduct

	for _, sale := range sales {
		if sale.Qty <= 0 {
			continue
		}
		bom, ok := boms[sale.Key]
		if !ok {
			missing = append(missing, MissingProduct(sale))
			continue
		}
		for _, comp := range bom.Comps.All() {
			if comp.ItemID == "" || comp.Qty <= 0 {
				continue
			}
			var item *catalogmodels.Item
			if it, found := catalog.ByID(comp.ItemID); found {
				item = &it
			}
			perSale := catalogsvcs.ToBase(item, comp.Qty, comp.Unit)
			usage[comp.ItemID] += sale.Qty * perSale
		}
	}

	sort.SliceStable(missing, func(i, j int) bool { return lessName(missing[i].Name, missing[j].Name) })
	return usage, missing
}

// Prefill estimates what remains after sales: prior on-hand minus consumed,
// floored at zero. Items the usage map does not mention keep their prior
// quantity.
func Prefill(prior map[string]float64, usage map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(prior))
	for id, qty := range prior {
		out[id] = math.Max(0, qty-usage[id])
	}
	return out
}
