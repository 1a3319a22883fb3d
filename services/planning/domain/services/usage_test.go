package services

import (
	"math"
	"testing"

	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
	"github.com/ghuser/parstock/services/planning/domain/models"
)

func usageCatalog() catalogmodels.Catalog {
	return catalogmodels.CatalogFromItems([]catalogmodels.Item{
		{
			ID: "seed-milk-oat-milk", Name: "Oat Milk",
			Uom: &catalogmodels.Uom{Base: "case", PerBase: map[string]float64{"sleeve": 12}},
		},
		{
			ID: "seed-cups-12oz-cold-cup", Name: "12oz Cold Cup",
			Uom: &catalogmodels.Uom{Base: "case", PerBase: map[string]float64{"sleeve": 20, "each": 1000}},
		},
	})
}

func latteBom() models.Bom {
	return models.Bom{
		Key:  "latte-12",
		Name: "Latte 12oz",
		SKU:  "latte-12",
		Type: models.ProductDrink,
		Comps: models.Comps{
			Cup:  &models.Component{ItemID: "seed-cups-12oz-cold-cup", Qty: 1, Unit: "each"},
			Milk: &models.Component{ItemID: "seed-milk-oat-milk", Qty: 0.5, Unit: "sleeve"},
		},
	}
}

func TestConsumption_ExplodesSalesThroughRecipes(t *testing.T) {
	sales := []SoldProduct{{Key: "latte-12", Name: "Latte 12oz", Qty: 40}}
	boms := map[string]models.Bom{"latte-12": latteBom()}

	usage, missing := Consumption(sales, boms, usageCatalog())

	if len(missing) != 0 {
		t.Fatalf("no product should be missing: %+v", missing)
	}
	// 40 cups at 1000 each per case.
	if got := usage["seed-cups-12oz-cold-cup"]; math.Abs(got-0.04) > 1e-9 {
		t.Fatalf("cup usage = %v, want 0.04 cases", got)
	}
	// 40 half-sleeves of milk at 12 sleeves per case.
	if got := usage["seed-milk-oat-milk"]; math.Abs(got-20.0/12.0) > 1e-9 {
		t.Fatalf("milk usage = %v, want %v cases", got, 20.0/12.0)
	}
}

func TestConsumption_MissingRecipeContributesNothing(t *testing.T) {
	sales := []SoldProduct{
		{Key: "iced latte", Name: "Iced Latte", Qty: 40},
		{Key: "latte-12", Name: "Latte 12oz", Qty: 2},
	}
	boms := map[string]models.Bom{"latte-12": latteBom()}

	usage, missing := Consumption(sales, boms, usageCatalog())

	if len(missing) != 1 || missing[0].Key != "iced latte" || missing[0].Qty != 40 {
		t.Fatalf("unexpected missing set: %+v", missing)
	}
	// Only the 2 recipe-backed lattes consume cups.
	if got := usage["seed-cups-12oz-cold-cup"]; math.Abs(got-0.002) > 1e-9 {
		t.Fatalf("cup usage = %v, want 0.002 cases", got)
	}
}

func TestConsumption_SkipsEmptyAndNonPositiveComponents(t *testing.T) {
	bom := latteBom()
	bom.Comps.Syrup = &models.Component{ItemID: "", Qty: 1}
	bom.Comps.Lid = &models.Component{ItemID: "seed-cups-12oz-cold-cup", Qty: 0}
	usage, _ := Consumption([]SoldProduct{{Key: "latte-12", Qty: 10}},
		map[string]models.Bom{"latte-12": bom}, usageCatalog())
	if got := usage["seed-cups-12oz-cold-cup"]; math.Abs(got-0.01) > 1e-9 {
		t.Fatalf("zero-qty lid slot must not add usage, got %v", got)
	}
}

func TestPrefill_FloorsAtZero(t *testing.T) {
	prior := map[string]float64{"a": 5, "b": 1, "c": 2}
	usage := map[string]float64{"a": 2, "b": 4}

	got := Prefill(prior, usage)

	if got["a"] != 3 {
		t.Fatalf("a = %v, want 3", got["a"])
	}
	if got["b"] != 0 {
		t.Fatalf("consumption beyond stock must floor at zero, got %v", got["b"])
	}
	if got["c"] != 2 {
		t.Fatalf("unconsumed items keep their prior count, got %v", got["c"])
	}
}
