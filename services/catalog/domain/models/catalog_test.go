package models

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func testSeeds() []Item {
	return []Item{
		{ID: "seed-a", Name: "Almond Milk", Category: "Milk", Locations: []string{"Marigold:Mueller"}},
		{ID: "seed-b", Name: "beans", Category: "Beverage Base", Locations: []string{"Marigold:Mueller", "Depot:East Side"}},
		{ID: "seed-c", Name: "Cups 12oz", Category: "Cups", Locations: []string{"Depot:East Side"},
			Uom: &Uom{Base: "case", PerBase: map[string]float64{"sleeve": 20}}},
	}
}

func TestResolve_LayerPrecedence(t *testing.T) {
	custom := []Item{
		{ID: "custom-d", Name: "Dish Brushes", Category: "Cleaning Supplies", Locations: []string{"Marigold:Mueller"}},
		// same id as a seed: the custom definition wins, position preserved
		{ID: "seed-a", Name: "Almond Milk (Barista)", Category: "Milk", Locations: []string{"Marigold:Mueller"}},
	}
	overrides := map[string]Override{
		"seed-b":   {Supplier: strPtr("Hill Country Roasters")},
		"ghost-id": {Supplier: strPtr("nobody")}, // no such item: inert
	}

	c := Resolve(testSeeds(), custom, overrides, nil)

	if c.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", c.Len())
	}
	if _, ok := c.ByID("ghost-id"); ok {
		t.Fatal("orphan override must not synthesize an item")
	}
	a, _ := c.ByID("seed-a")
	if a.Name != "Almond Milk (Barista)" {
		t.Fatalf("custom layer should replace seed, got name %q", a.Name)
	}
	if got := c.Items()[0].ID; got != "seed-a" {
		t.Fatalf("replaced item should keep its seed position, got first id %q", got)
	}
	b, _ := c.ByID("seed-b")
	if b.Supplier != "Hill Country Roasters" {
		t.Fatalf("override not applied, supplier %q", b.Supplier)
	}
}

func TestResolve_Hidden(t *testing.T) {
	c := Resolve(testSeeds(), nil, nil, map[string]bool{"seed-b": true})
	if c.Len() != 2 {
		t.Fatalf("expected 2 items after hiding one, got %d", c.Len())
	}
	if _, ok := c.ByID("seed-b"); ok {
		t.Fatal("hidden item still resolvable")
	}
}

func TestItemsForLocation_SortsCaseInsensitively(t *testing.T) {
	c := Resolve(testSeeds(), nil, nil, nil)
	got := c.ItemsForLocation("Marigold:Mueller")
	if len(got) != 2 {
		t.Fatalf("expected 2 items at location, got %d", len(got))
	}
	// "Almond Milk" before "beans" despite case difference
	if got[0].ID != "seed-a" || got[1].ID != "seed-b" {
		t.Fatalf("wrong order: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestBySlot_FallsBackToAll(t *testing.T) {
	c := Resolve(testSeeds(), nil, nil, nil)

	if got := c.BySlot("Milk"); len(got) != 1 || got[0].ID != "seed-a" {
		t.Fatalf("expected just the milk item, got %d items", len(got))
	}
	if got := c.BySlot("No Such Category"); len(got) != c.Len() {
		t.Fatalf("empty slot match should return full catalog, got %d items", len(got))
	}
}

func TestOverrideApply_UomMergesChildTable(t *testing.T) {
	base := Item{
		ID:  "seed-c",
		Uom: &Uom{Base: "case", PerBase: map[string]float64{"sleeve": 20}},
	}
	ov := Override{Uom: &UomPatch{PerBase: map[string]float64{"each": 200}}}

	got := ov.Apply(base)
	if got.Uom.Base != "case" {
		t.Fatalf("absent base should inherit, got %q", got.Uom.Base)
	}
	want := map[string]float64{"sleeve": 20, "each": 200}
	if !reflect.DeepEqual(got.Uom.PerBase, want) {
		t.Fatalf("child tables should merge, got %v", got.Uom.PerBase)
	}
	if base.Uom.PerBase["each"] != 0 {
		t.Fatal("apply mutated the base item")
	}
}

func TestOverrideApply_ParMergesPerKey_LocationsReplace(t *testing.T) {
	base := Item{
		ID:        "seed-a",
		Par:       map[string]float64{"Marigold:Mueller": 3},
		Locations: []string{"Marigold:Mueller", "Depot:East Side"},
	}
	ov := Override{
		Par:       map[string]float64{"Depot:East Side": 10},
		Locations: []string{"Marigold:Mueller"},
	}

	got := ov.Apply(base)
	if got.Par["Marigold:Mueller"] != 3 || got.Par["Depot:East Side"] != 10 {
		t.Fatalf("par should merge per key, got %v", got.Par)
	}
	if !reflect.DeepEqual(got.Locations, []string{"Marigold:Mueller"}) {
		t.Fatalf("locations should replace wholesale, got %v", got.Locations)
	}
}

func TestMergeAttributes_OperationalOnly(t *testing.T) {
	src := Item{
		Name:          "Source",
		Category:      "Cups",
		Supplier:      "Acme",
		SKU:           "CUPS-SRC",
		OrderMultiple: 6,
		MakeOrBuy:     MakeBuyMake,
		Uom:           &Uom{Base: "case", PerBase: map[string]float64{"sleeve": 20}},
	}
	ov := MergeAttributes(src, OperationalFields...)

	if ov.Name != nil || ov.Category != nil {
		t.Fatal("copy-all must not copy name or category")
	}
	dst := ov.Apply(Item{ID: "dst", Name: "Destination", Category: "Lids"})
	if dst.Name != "Destination" || dst.Category != "Lids" {
		t.Fatal("destination identity fields changed")
	}
	if dst.Supplier != "Acme" || dst.SKU != "CUPS-SRC" || dst.OrderMultiple != 6 ||
		dst.MakeOrBuy != MakeBuyMake || dst.Uom == nil || dst.Uom.PerBase["sleeve"] != 20 {
		t.Fatalf("operational fields not copied: %+v", dst)
	}
}

func TestSeeds_DeterministicIDsAndDefaults(t *testing.T) {
	a, b := Seeds(), Seeds()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("seed list must be deterministic")
	}
	byID := map[string]Item{}
	for _, it := range a {
		if _, dup := byID[it.ID]; dup {
			t.Fatalf("duplicate seed id %q", it.ID)
		}
		byID[it.ID] = it
		if len(it.Locations) != len(LocationKeys()) {
			t.Fatalf("seed %q not tracked everywhere", it.ID)
		}
	}
	syrup, ok := byID["seed-house-syrups-vanilla"]
	if !ok {
		t.Fatal("expected seed-house-syrups-vanilla")
	}
	if syrup.MakeOrBuy != MakeBuyMake {
		t.Fatal("house syrups default to make")
	}
	if syrup.Uom == nil || syrup.Uom.Base != "case" {
		t.Fatalf("house syrups default to case base, got %+v", syrup.Uom)
	}
}
