package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	catalogapp "github.com/ghuser/parstock/services/catalog/application/services"
	catalogdomain "github.com/ghuser/parstock/services/catalog/domain"
	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
	catalogsvcs "github.com/ghuser/parstock/services/catalog/domain/services"
	countingapp "github.com/ghuser/parstock/services/counting/application/services"
	countingmodels "github.com/ghuser/parstock/services/counting/domain/models"
	"github.com/ghuser/parstock/services/planning/domain/models"
	"github.com/ghuser/parstock/services/planning/domain/repositories"
	planningsvcs "github.com/ghuser/parstock/services/planning/domain/services"
)

// PlanningService turns PAR targets, today's counts, recipes and sales into
// replenishment suggestions. All math lives in the domain services; this
// layer resolves locations, loads state and renders exports.
type PlanningService struct {
	boms     repositories.BomRepository
	catalog  *catalogapp.CatalogService
	counting *countingapp.CountingService
}

// NewPlanningService returns a PlanningService wired with its dependencies.
func NewPlanningService(boms repositories.BomRepository, catalog *catalogapp.CatalogService, counting *countingapp.CountingService) *PlanningService {
	return &PlanningService{boms: boms, catalog: catalog, counting: counting}
}

// resolveLocations maps keys to locations, or returns the fallback set when
// no keys are given.
func resolveLocations(keys []string, fallback []catalogmodels.Location) ([]catalogmodels.Location, error) {
	if len(keys) == 0 {
		return fallback, nil
	}
	out := make([]catalogmodels.Location, 0, len(keys))
	for _, k := range keys {
		loc, ok := catalogmodels.FindLocation(k)
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, k)
		}
		out = append(out, loc)
	}
	return out, nil
}

func (s *PlanningService) planningInputs(ctx context.Context) ([]catalogmodels.Item, planningsvcs.Stock, error) {
	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := s.counting.OnHandSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	return catalog.Items(), planningsvcs.Stock(snapshot), nil
}

// Picklist computes what to move today. Empty dests default to every cafe,
// empty sources to the warehouses.
func (s *PlanningService) Picklist(ctx context.Context, destKeys, sourceKeys []string) ([]planningsvcs.PicklistRow, []planningsvcs.PullRow, error) {
	dests, err := resolveLocations(destKeys, catalogmodels.Destinations())
	if err != nil {
		return nil, nil, err
	}
	sources, err := resolveLocations(sourceKeys, catalogmodels.Warehouses())
	if err != nil {
		return nil, nil, err
	}
	items, stock, err := s.planningInputs(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, pulls := planningsvcs.Picklist(items, stock, dests, sources)
	return rows, pulls, nil
}

// OrderList computes today's purchase suggestions for bought items.
func (s *PlanningService) OrderList(ctx context.Context, destKeys []string) ([]planningsvcs.OrderRow, error) {
	dests, err := resolveLocations(destKeys, catalogmodels.Destinations())
	if err != nil {
		return nil, err
	}
	items, stock, err := s.planningInputs(ctx)
	if err != nil {
		return nil, err
	}
	return planningsvcs.OrderList(items, stock, dests, catalogmodels.Warehouses()), nil
}

// ProductionList computes today's make list, netting stock fleet-wide.
func (s *PlanningService) ProductionList(ctx context.Context, destKeys []string) ([]planningsvcs.ProductionRow, error) {
	dests, err := resolveLocations(destKeys, catalogmodels.Destinations())
	if err != nil {
		return nil, err
	}
	items, stock, err := s.planningInputs(ctx)
	if err != nil {
		return nil, err
	}
	return planningsvcs.ProductionList(items, stock, dests, catalogmodels.Locations()), nil
}

func fmtQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PicklistCSV renders the per-destination picklist for download.
func (s *PlanningService) PicklistCSV(ctx context.Context, destKeys, sourceKeys []string) (string, []string, [][]string, error) {
	rows, _, err := s.Picklist(ctx, destKeys, sourceKeys)
	if err != nil {
		return "", nil, nil, err
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Destination, r.Name, fmtQty(r.Qty)}
	}
	name := "picklist_" + time.Now().Format("2006-01-02") + ".csv"
	return name, []string{"Destination", "Item", "Qty (base)"}, out, nil
}

// OrderCSV renders the purchase suggestions for download.
func (s *PlanningService) OrderCSV(ctx context.Context, destKeys []string) (string, []string, [][]string, error) {
	rows, err := s.OrderList(ctx, destKeys)
	if err != nil {
		return "", nil, nil, err
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Name, fmtQty(r.NeedTotal), fmtQty(r.Available), fmtQty(r.OrderQty)}
	}
	name := "order_" + time.Now().Format("2006-01-02") + ".csv"
	return name, []string{"Item", "Need total (base)", "Available at warehouses", "Order Qty (base)"}, out, nil
}

// ProductionCSV renders the make list for download.
func (s *PlanningService) ProductionCSV(ctx context.Context, destKeys []string) (string, []string, [][]string, error) {
	rows, err := s.ProductionList(ctx, destKeys)
	if err != nil {
		return "", nil, nil, err
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Name, fmtQty(r.NeedTotal), fmtQty(r.OnHand), fmtQty(r.ProduceQty)}
	}
	name := "production_" + time.Now().Format("2006-01-02") + ".csv"
	return name, []string{"Item", "Need total (base)", "Global On-hand", "Produce Qty (base)"}, out, nil
}

// Suggestion is the per-item replenishment hint shown while counting: the
// PAR shortfall at one location and the rounded order suggestion, projected
// into a display unit.
type Suggestion struct {
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	LocationKey string  `json:"location_key"`
	Unit        string  `json:"unit"`
	Par         float64 `json:"par"`
	OnHand      float64 `json:"on_hand"`
	Need        float64 `json:"need"`
	Suggested   float64 `json:"suggested"`
}

// Suggest computes the replenishment hint for one item at one location. An
// empty unit falls back to the operator's preferred counting unit.
func (s *PlanningService) Suggest(ctx context.Context, itemID, locKey, unit string) (Suggestion, error) {
	if _, ok := catalogmodels.FindLocation(locKey); !ok {
		return Suggestion{}, fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, locKey)
	}
	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return Suggestion{}, err
	}
	item, ok := catalog.ByID(itemID)
	if !ok {
		return Suggestion{}, fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, itemID)
	}
	onHand, err := s.counting.OnHand(ctx, itemID, locKey)
	if err != nil {
		return Suggestion{}, err
	}
	if unit == "" {
		choices, err := s.catalog.UnitChoices(ctx)
		if err != nil {
			return Suggestion{}, err
		}
		unit = catalogapp.CountingUnitFor(choices, locKey, &item)
	}

	stock := planningsvcs.Stock{locKey: {itemID: onHand}}
	need := planningsvcs.Need(item, locKey, stock)
	return Suggestion{
		ItemID:      item.ID,
		Name:        item.Name,
		LocationKey: locKey,
		Unit:        unit,
		Par:         catalogsvcs.FromBase(&item, item.ParAt(locKey), unit),
		OnHand:      catalogsvcs.FromBase(&item, onHand, unit),
		Need:        catalogsvcs.FromBase(&item, need, unit),
		Suggested:   catalogsvcs.FromBase(&item, planningsvcs.Suggest(item, need), unit),
	}, nil
}

// Boms lists every recipe on file.
func (s *PlanningService) Boms(ctx context.Context) (map[string]models.Bom, error) {
	return s.boms.Boms(ctx)
}

// Bom loads one recipe by product key.
func (s *PlanningService) Bom(ctx context.Context, key string) (models.Bom, error) {
	return s.boms.Get(ctx, key)
}

// SaveBom upserts a recipe, deriving its product key from SKU or name and
// stamping the update time.
func (s *PlanningService) SaveBom(ctx context.Context, bom models.Bom) (models.Bom, error) {
	bom.Key = models.ProductKey(bom.SKU, bom.Name)
	if bom.Key == "" {
		return models.Bom{}, fmt.Errorf("%w: recipe needs a sku or a name", catalogdomain.ErrInvalidItemName)
	}
	if bom.Type == "" {
		bom.Type = models.ProductOther
	}
	bom.UpdatedAt = time.Now().UTC()
	if err := s.boms.Save(ctx, bom); err != nil {
		return models.Bom{}, err
	}
	return bom, nil
}

// DeleteBom removes a recipe.
func (s *PlanningService) DeleteBom(ctx context.Context, key string) error {
	return s.boms.Delete(ctx, key)
}

// SlotOptions lists the catalog items an editor should offer for a recipe
// slot, falling back to the whole catalog for unmapped slots.
func (s *PlanningService) SlotOptions(ctx context.Context, slot string) ([]catalogmodels.Item, error) {
	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.BySlot(models.SlotCategories(slot)...), nil
}

// SalesImportResult is what a sales upload produces: the aggregated
// products, per-item base-unit usage, and the products with no recipe.
type SalesImportResult struct {
	Products []planningsvcs.SoldProduct    `json:"products"`
	Usage    map[string]float64            `json:"usage"`
	Missing  []planningsvcs.MissingProduct `json:"missing"`
}

// ImportSales parses a point-of-sale export and explodes it through the
// recipes on file. Nothing is written; the caller applies the usage to a
// run separately.
func (s *PlanningService) ImportSales(ctx context.Context, r io.Reader, hints planningsvcs.ColumnHints) (SalesImportResult, error) {
	sales, err := planningsvcs.ParseSalesCSV(r, hints)
	if err != nil {
		return SalesImportResult{}, err
	}
	boms, err := s.boms.Boms(ctx)
	if err != nil {
		return SalesImportResult{}, err
	}
	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return SalesImportResult{}, err
	}
	usage, missing := planningsvcs.Consumption(sales, boms, catalog)
	return SalesImportResult{Products: sales, Usage: usage, Missing: missing}, nil
}

// ApplyUsage subtracts consumed quantities from today's run at the location,
// flooring each line at zero.
func (s *PlanningService) ApplyUsage(ctx context.Context, locKey string, usage map[string]float64) (countingmodels.Run, error) {
	return s.counting.ApplyUsage(ctx, locKey, usage)
}
