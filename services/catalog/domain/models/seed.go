package models

// The seed catalog is compiled in: the starting item list every deployment
// shares before any custom items or overrides are written. Seed ids are
// deterministic ("seed-<category>-<name>" slugs) so overrides keep applying
// across releases.

type rawSeed struct {
	family string
	name   string
}

var rawSeeds = []rawSeed{
	{"Coffee Bulk", "Copperline (Espresso)"},
	{"Coffee Bulk", "Decaf Sundown"},
	{"Coffee Bulk", "Night Pasture (Cold Brew)"},
	{"Coffee Bulk", "Switchback (Drip)"},
	{"Cups", "4oz Sample"},
	{"Cups", "8oz Hot"},
	{"Cups", "12oz Hot"},
	{"Cups", "16oz Hot"},
	{"Cups", "12oz Cold"},
	{"Cups", "16oz Cold"},
	{"Lids", "Cold Sipper"},
	{"Lids", "8oz Hot Sipper"},
	{"Lids", "12/16 Hot Sipper"},
	{"Milk", "Whole"},
	{"Milk", "Almond"},
	{"Milk", "Oat"},
	{"Milk", "Heavy Whipping Cream"},
	{"Milk", "Half & Half"},
	{"House Syrups", "Vanilla"},
	{"House Syrups", "Brown Sugar Cinnamon"},
	{"House Syrups", "Honey Lavender"},
	{"House Syrups", "Simple"},
	{"House Syrups", "SF Vanilla"},
	{"Syrups", "Dark Chocolate Sauce"},
	{"Syrups", "White Chocolate Sauce"},
	{"Syrups", "Caramel"},
	{"Syrups", "Hazelnut"},
	{"Syrups", "Raspberry"},
	{"Tea", "Matcha"},
	{"Tea", "Chai"},
	{"Tea", "Earl Grey"},
	{"Tea", "Chamomile"},
	{"Tea", "Hibiscus"},
	{"Prepped Bev", "Cold Brew Concentrate"},
	{"Prepped Bev", "Iced Tea Brewed"},
	{"Prepped Bev", "Horchata Blended"},
	{"Misc Bev", "Sparkling Water"},
	{"Misc Bev", "Juice Boxes"},
	{"Misc Bev", "Hot Cocoa Mix"},
	{"Packaging", "Paper Bags w/ Handle"},
	{"Packaging", "Pastry Bags"},
	{"Consumables", "Straws"},
	{"Consumables", "Drink Stoppers"},
	{"Consumables", "Sugar Packets"},
	{"Consumables", "Stevia Packets"},
	{"Consumables", "Wooden Stir Sticks"},
	{"Consumables", "Cup Carriers"},
	{"Consumables", "Customer Napkins"},
	{"Consumables", "Receipt Paper"},
	{"Bev Supplies", "Coffee Filters"},
	{"Bev Supplies", "Hot Cup Sleeves"},
	{"Cleaning Supplies", "Sanitizer"},
	{"Cleaning Supplies", "Dish Soap"},
	{"Cleaning Supplies", "Compost Bags"},
	{"Cleaning Supplies", "Trash Bags"},
	{"Cleaning Supplies", "Espresso Machine Tablets"},
	{"Cleaning Supplies", "Microfiber Towels"},
	{"Ingredients", "Honey"},
	{"Ingredients", "Sugar"},
	{"Ingredients", "Brown Sugar"},
	{"Ingredients", "Cinnamon Sticks"},
	{"Ingredients", "Lavender"},
	{"Ingredients", "Evaporated Milk"},
	{"Retail", "Whole Bean Dark Roast"},
	{"Retail", "Whole Bean House Blend"},
	{"Supplies", "Sanitizer Test Strips"},
}

// defaultMake marks categories whose items are produced in house.
var defaultMake = map[string]bool{
	"House Syrups": true,
	"Prepped Bev":  true,
}

// defaultUomBase assigns a starting base unit by category. Child units are
// added per item through overrides.
var defaultUomBase = map[string]string{
	"Cups":          "case",
	"Lids":          "case",
	"House Syrups":  "case",
	"Syrups":        "case",
	"Beverage Base": "bag",
	"Milk":          "each",
}

// Seeds builds the seed item list. Tea and Coffee Bulk fold into the
// Beverage Base category; every seed is tracked at every location.
func Seeds() []Item {
	allLocs := LocationKeys()
	items := make([]Item, 0, len(rawSeeds))
	for _, s := range rawSeeds {
		cat := s.family
		if cat == "Tea" || cat == "Coffee Bulk" {
			cat = "Beverage Base"
		}
		it := Item{
			ID:        "seed-" + Slug(cat) + "-" + Slug(s.name),
			Name:      s.name,
			Category:  cat,
			SKU:       GenerateSKU(cat, s.name),
			MakeOrBuy: MakeBuyBuy,
			Locations: append([]string(nil), allLocs...),
		}
		if defaultMake[cat] {
			it.MakeOrBuy = MakeBuyMake
		}
		if base, ok := defaultUomBase[cat]; ok {
			it.Uom = &Uom{Base: base, PerBase: map[string]float64{}}
		}
		items = append(items, it)
	}
	return items
}
