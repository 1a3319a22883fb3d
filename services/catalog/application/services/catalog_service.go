package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pkgcache "github.com/ghuser/parstock/pkg/cache"
	catalogdomain "github.com/ghuser/parstock/services/catalog/domain"
	domainevents "github.com/ghuser/parstock/services/catalog/domain/events"
	"github.com/ghuser/parstock/services/catalog/domain/models"
	"github.com/ghuser/parstock/services/catalog/domain/repositories"
	domainsvcs "github.com/ghuser/parstock/services/catalog/domain/services"
)

// CatalogService orchestrates catalog resolution and layer edits.
// Reads serve the resolved catalog from Redis when available; every write
// invalidates the snapshot (the worker re-warms it on catalog.changed).
// Event publishing is handled by the repository layer (outbox pattern).
type CatalogService struct {
	repo  repositories.CatalogRepository
	cache *pkgcache.CatalogCache
}

// NewCatalogService returns a CatalogService wired with the given repository and cache.
func NewCatalogService(repo repositories.CatalogRepository, cache *pkgcache.CatalogCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

// Resolved returns the merged catalog using a read-through cache pattern:
//  1. Check Redis for the resolved snapshot.
//  2. On miss (or cache error), load the layers and merge.
//  3. Asynchronously warm the cache with the merge result.
func (s *CatalogService) Resolved(ctx context.Context) (models.Catalog, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx); err == nil {
			var items []models.Item
			if err := json.Unmarshal(raw, &items); err == nil {
				return models.CatalogFromItems(items), nil
			}
		}
	}

	catalog, err := s.resolveFromStore(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	if s.cache != nil {
		items := catalog.Items()
		go func() {
			if raw, err := json.Marshal(items); err == nil {
				_ = s.cache.Set(context.Background(), raw)
			}
		}()
	}
	return catalog, nil
}

// WarmCache merges the catalog from the store and writes the snapshot,
// bypassing any cached copy. Used by the worker after catalog.changed.
func (s *CatalogService) WarmCache(ctx context.Context) error {
	catalog, err := s.resolveFromStore(ctx)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(catalog.Items())
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	return s.cache.Set(ctx, raw)
}

func (s *CatalogService) resolveFromStore(ctx context.Context) (models.Catalog, error) {
	custom, err := s.repo.CustomItems(ctx)
	if err != nil {
		return models.Catalog{}, err
	}
	overrides, err := s.repo.Overrides(ctx)
	if err != nil {
		return models.Catalog{}, err
	}
	hidden, err := s.repo.HiddenIDs(ctx)
	if err != nil {
		return models.Catalog{}, err
	}
	return models.Resolve(models.Seeds(), custom, overrides, hidden), nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

// AddItem creates a user-added item tracked at the given locations.
func (s *CatalogService) AddItem(ctx context.Context, name, category string, locations []string) (models.Item, error) {
	if strings.TrimSpace(name) == "" {
		return models.Item{}, fmt.Errorf("%w: name is empty", catalogdomain.ErrInvalidItemName)
	}
	if len(locations) == 0 {
		return models.Item{}, fmt.Errorf("%w: at least one location required", catalogdomain.ErrLocationNotFound)
	}
	for _, key := range locations {
		if _, ok := models.FindLocation(key); !ok {
			return models.Item{}, fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, key)
		}
	}

	item := models.NewCustomItem(name, category, locations)

	catalog, err := s.Resolved(ctx)
	if err != nil {
		return models.Item{}, err
	}
	if _, exists := catalog.ByID(item.ID); exists {
		return models.Item{}, fmt.Errorf("%w: %s", catalogdomain.ErrDuplicateItem, item.ID)
	}

	if err := s.repo.AddCustomItem(ctx, item); err != nil {
		return models.Item{}, fmt.Errorf("save custom item: %w", err)
	}
	s.invalidate(ctx)
	return item, nil
}

// SaveOverrides merges the given patches into the override layer, item by
// item. A patch for an unknown id is stored but inert until such an item
// appears.
func (s *CatalogService) SaveOverrides(ctx context.Context, patches map[string]models.Override) error {
	if len(patches) == 0 {
		return nil
	}
	overrides, err := s.repo.Overrides(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(patches))
	for id, patch := range patches {
		overrides[id] = mergeOverride(overrides[id], patch)
		ids = append(ids, id)
	}
	if err := s.repo.SaveOverrides(ctx, overrides, domainevents.ChangeOverridesSaved, ids); err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// mergeOverride layers patch onto an existing override: present fields win,
// absent fields keep the stored value. A Uom patch keeps the stored base
// when the patch leaves it blank but replaces the child table wholesale,
// since the editor always submits the full table.
func mergeOverride(existing, patch models.Override) models.Override {
	out := existing
	if patch.Name != nil {
		out.Name = patch.Name
	}
	if patch.Category != nil {
		out.Category = patch.Category
	}
	if patch.Supplier != nil {
		out.Supplier = patch.Supplier
	}
	if patch.SKU != nil {
		out.SKU = patch.SKU
	}
	if patch.OrderMultiple != nil {
		out.OrderMultiple = patch.OrderMultiple
	}
	if patch.MakeOrBuy != nil {
		out.MakeOrBuy = patch.MakeOrBuy
	}
	if patch.Locations != nil {
		out.Locations = patch.Locations
	}
	if patch.Par != nil {
		out.Par = patch.Par
	}
	if patch.ParUnit != nil {
		out.ParUnit = patch.ParUnit
	}
	if patch.Uom != nil {
		base := patch.Uom.Base
		if base == "" && existing.Uom != nil {
			base = existing.Uom.Base
		}
		out.Uom = &models.UomPatch{Base: base, PerBase: patch.Uom.PerBase}
	}
	return out
}

// HideItem removes the item from every resolved view without deleting its
// definition or stored overrides.
func (s *CatalogService) HideItem(ctx context.Context, itemID string) error {
	catalog, err := s.Resolved(ctx)
	if err != nil {
		return err
	}
	if _, ok := catalog.ByID(itemID); !ok {
		return fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, itemID)
	}
	if err := s.repo.Hide(ctx, itemID); err != nil {
		return fmt.Errorf("hide item: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// CopyAttributes copies attributes from one item onto another as an
// override patch. Fields defaults to the operational set; pass
// models.FieldUom alone to copy just the unit ladder.
func (s *CatalogService) CopyAttributes(ctx context.Context, dstID, srcID string, fields ...string) error {
	catalog, err := s.Resolved(ctx)
	if err != nil {
		return err
	}
	src, ok := catalog.ByID(srcID)
	if !ok {
		return fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, srcID)
	}
	if _, ok := catalog.ByID(dstID); !ok {
		return fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, dstID)
	}
	if len(fields) == 0 {
		fields = models.OperationalFields
	}
	patch := models.MergeAttributes(src, fields...)
	if patch.IsZero() {
		return nil
	}
	return s.SaveOverrides(ctx, map[string]models.Override{dstID: patch})
}

// ParEntry is one PAR sheet cell edit: a target quantity for an item at a
// location, entered in any unit the item supports.
type ParEntry struct {
	ItemID      string
	LocationKey string
	Qty         float64
	Unit        string
}

// SetPars applies PAR sheet edits. Quantities convert to base units before
// storage. A quantity of zero or less removes the cell: no PAR means "no
// target set, never ordered", and a zero target is the same state.
func (s *CatalogService) SetPars(ctx context.Context, entries []ParEntry) error {
	if len(entries) == 0 {
		return nil
	}
	catalog, err := s.Resolved(ctx)
	if err != nil {
		return err
	}
	overrides, err := s.repo.Overrides(ctx)
	if err != nil {
		return err
	}

	touched := map[string]bool{}
	for _, e := range entries {
		item, ok := catalog.ByID(e.ItemID)
		if !ok {
			return fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, e.ItemID)
		}
		if _, ok := models.FindLocation(e.LocationKey); !ok {
			return fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, e.LocationKey)
		}
		unit := e.Unit
		if unit == "" {
			unit = domainsvcs.DefaultUnitFor(&item)
		} else if !unitSupported(&item, unit) {
			return fmt.Errorf("%w: %s %s", catalogdomain.ErrUnknownUnit, e.ItemID, unit)
		}

		ov := overrides[e.ItemID]
		if ov.Par == nil {
			ov.Par = map[string]float64{}
		}
		if ov.ParUnit == nil {
			ov.ParUnit = map[string]string{}
		}
		if e.Qty > 0 {
			ov.Par[e.LocationKey] = domainsvcs.ToBase(&item, e.Qty, unit)
			ov.ParUnit[e.LocationKey] = unit
		} else {
			delete(ov.Par, e.LocationKey)
			delete(ov.ParUnit, e.LocationKey)
		}
		overrides[e.ItemID] = ov
		touched[e.ItemID] = true
	}

	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	if err := s.repo.SaveOverrides(ctx, overrides, domainevents.ChangeParsSaved, ids); err != nil {
		return fmt.Errorf("save pars: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func unitSupported(item *models.Item, unit string) bool {
	for _, u := range domainsvcs.UnitsFor(item) {
		if u == unit {
			return true
		}
	}
	return false
}

// ParCell is one PAR sheet cell for display: the stored base quantity plus
// its preferred-unit projection.
type ParCell struct {
	LocationKey string  `json:"location"`
	BaseQty     float64 `json:"base_qty"`
	Unit        string  `json:"unit"`
	DisplayQty  float64 `json:"display_qty"`
}

// ParRow is one PAR sheet row: an item and its cell per location.
type ParRow struct {
	ItemID string    `json:"item_id"`
	Name   string    `json:"name"`
	Units  []string  `json:"units"`
	Cells  []ParCell `json:"cells"`
}

// ParSheet returns the PAR grid for every resolved item across the fleet,
// each cell projected into its preferred display unit.
func (s *CatalogService) ParSheet(ctx context.Context) ([]ParRow, error) {
	catalog, err := s.Resolved(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ParRow, 0, catalog.Len())
	for _, item := range catalog.Items() {
		item := item
		row := ParRow{ItemID: item.ID, Name: item.Name, Units: domainsvcs.UnitsFor(&item)}
		for _, loc := range models.Locations() {
			key := loc.Key()
			unit := item.ParUnit[key]
			if unit == "" {
				unit = domainsvcs.DefaultUnitFor(&item)
			}
			base := item.ParAt(key)
			row.Cells = append(row.Cells, ParCell{
				LocationKey: key,
				BaseQty:     base,
				Unit:        unit,
				DisplayQty:  domainsvcs.FromBase(&item, base, unit),
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SetUnitChoice records the preferred counting unit for an item at a location.
func (s *CatalogService) SetUnitChoice(ctx context.Context, locationKey, itemID, unit string) error {
	catalog, err := s.Resolved(ctx)
	if err != nil {
		return err
	}
	item, ok := catalog.ByID(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", catalogdomain.ErrItemNotFound, itemID)
	}
	if _, ok := models.FindLocation(locationKey); !ok {
		return fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, locationKey)
	}
	if !unitSupported(&item, unit) {
		return fmt.Errorf("%w: %s %s", catalogdomain.ErrUnknownUnit, itemID, unit)
	}
	choices, err := s.repo.UnitChoices(ctx)
	if err != nil {
		return err
	}
	choices[UnitChoiceKey(locationKey, itemID)] = unit
	if err := s.repo.SaveUnitChoices(ctx, choices); err != nil {
		return fmt.Errorf("save unit choices: %w", err)
	}
	return nil
}

// UnitChoices returns the full preferred counting unit map.
func (s *CatalogService) UnitChoices(ctx context.Context) (map[string]string, error) {
	return s.repo.UnitChoices(ctx)
}

// UnitChoiceKey builds the map key for a (location, item) unit preference.
func UnitChoiceKey(locationKey, itemID string) string {
	return locationKey + "|" + itemID
}

// CountingUnitFor picks the unit a quantity should be entered in: the
// recorded preference, or the item's first declared unit.
func CountingUnitFor(choices map[string]string, locationKey string, item *models.Item) string {
	if item != nil {
		if u, ok := choices[UnitChoiceKey(locationKey, item.ID)]; ok && unitSupported(item, u) {
			return u
		}
	}
	return domainsvcs.DefaultUnitFor(item)
}
