package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	catalogdomain "github.com/ghuser/parstock/services/catalog/domain"
	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
	catalogsvcs "github.com/ghuser/parstock/services/catalog/domain/services"

	catalogapp "github.com/ghuser/parstock/services/catalog/application/services"
	countingdomain "github.com/ghuser/parstock/services/counting/domain"
	"github.com/ghuser/parstock/services/counting/domain/models"
	"github.com/ghuser/parstock/services/counting/domain/repositories"
)

// CountingService orchestrates counting runs: one session per location per
// local day. Every state-changing call reconciles against the live catalog
// and saves before returning; the run carries no autosave of its own.
type CountingService struct {
	repo    repositories.RunRepository
	catalog *catalogapp.CatalogService
}

// NewCountingService returns a CountingService wired with the given run
// repository and catalog service.
func NewCountingService(repo repositories.RunRepository, catalog *catalogapp.CatalogService) *CountingService {
	return &CountingService{repo: repo, catalog: catalog}
}

func (s *CountingService) location(locKey string) (catalogmodels.Location, error) {
	loc, ok := catalogmodels.FindLocation(locKey)
	if !ok {
		return catalogmodels.Location{}, fmt.Errorf("%w: %s", catalogdomain.ErrLocationNotFound, locKey)
	}
	return loc, nil
}

func (s *CountingService) assignedItems(ctx context.Context, locKey string) ([]catalogmodels.Item, error) {
	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ItemsForLocation(locKey), nil
}

// StartOrResume opens today's run for the location. An existing run is
// reconciled against the live catalog; otherwise a new run starts with
// every assigned item at zero, stamped with the operator's name.
func (s *CountingService) StartOrResume(ctx context.Context, locKey, by string) (models.Run, error) {
	loc, err := s.location(locKey)
	if err != nil {
		return models.Run{}, err
	}
	items, err := s.assignedItems(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}

	now := time.Now()
	runs, err := s.repo.Runs(ctx)
	if err != nil {
		return models.Run{}, err
	}
	if existing, ok := runs[models.RunID(locKey, now)]; ok {
		synced := models.Reconcile(existing, items)
		if by != "" && synced.By == "" {
			synced.By = by
		}
		if err := s.repo.Save(ctx, synced); err != nil {
			return models.Run{}, fmt.Errorf("save run: %w", err)
		}
		return synced, nil
	}

	run := models.NewRun(loc, items, by, now)
	if err := s.repo.Save(ctx, run); err != nil {
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// Get returns today's run for the location, reconciled but not saved.
func (s *CountingService) Get(ctx context.Context, locKey string) (models.Run, error) {
	if _, err := s.location(locKey); err != nil {
		return models.Run{}, err
	}
	run, err := s.repo.Get(ctx, models.RunID(locKey, time.Now()))
	if err != nil {
		return models.Run{}, err
	}
	items, err := s.assignedItems(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	return models.Reconcile(run, items), nil
}

// CommitCount records a count for the line at idx, entered as a display
// quantity in the given unit (empty means the operator's preferred unit).
// Entries floor to whole units as counted, convert to base, and clamp at
// zero; the stored base quantity may still be fractional, e.g. 30 sleeves
// at 12 per case is 2.5 cases.
func (s *CountingService) CommitCount(ctx context.Context, locKey string, idx int, qty float64, unit string) (models.Run, error) {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return models.Run{}, fmt.Errorf("%w: %v", countingdomain.ErrNegativeQuantity, qty)
	}
	run, err := s.Get(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	if idx < 0 || idx >= len(run.Lines) {
		return models.Run{}, fmt.Errorf("%w: index %d", countingdomain.ErrEntryNotFound, idx)
	}

	catalog, err := s.catalog.Resolved(ctx)
	if err != nil {
		return models.Run{}, err
	}
	var item *catalogmodels.Item
	if it, ok := catalog.ByID(run.Lines[idx].ItemID); ok {
		item = &it
	}
	if unit == "" {
		choices, err := s.catalog.UnitChoices(ctx)
		if err != nil {
			return models.Run{}, err
		}
		unit = catalogapp.CountingUnitFor(choices, locKey, item)
	}

	base := catalogsvcs.ToBase(item, math.Floor(qty), unit)
	next, ok := models.SetQuantity(run, idx, base)
	if !ok {
		return models.Run{}, fmt.Errorf("%w: index %d", countingdomain.ErrEntryNotFound, idx)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}
	return next, nil
}

// Advance moves the cursor by delta after reconciling, and saves.
func (s *CountingService) Advance(ctx context.Context, locKey string, delta int) (models.Run, error) {
	return s.move(ctx, locKey, func(run models.Run, items []catalogmodels.Item) models.Run {
		return models.Advance(run, items, delta)
	})
}

// JumpTo moves the cursor to idx after reconciling, and saves.
func (s *CountingService) JumpTo(ctx context.Context, locKey string, idx int) (models.Run, error) {
	return s.move(ctx, locKey, func(run models.Run, items []catalogmodels.Item) models.Run {
		return models.JumpTo(run, items, idx)
	})
}

func (s *CountingService) move(ctx context.Context, locKey string, fn func(models.Run, []catalogmodels.Item) models.Run) (models.Run, error) {
	if _, err := s.location(locKey); err != nil {
		return models.Run{}, err
	}
	run, err := s.repo.Get(ctx, models.RunID(locKey, time.Now()))
	if err != nil {
		return models.Run{}, err
	}
	items, err := s.assignedItems(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	next := fn(run, items)
	if err := s.repo.Save(ctx, next); err != nil {
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}
	return next, nil
}

// Complete stamps the run as finished and publishes run.completed. The run
// stays editable and re-exportable.
func (s *CountingService) Complete(ctx context.Context, locKey string) (models.Run, error) {
	run, err := s.Get(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	next := models.Complete(run, time.Now())
	if err := s.repo.SaveCompleted(ctx, next); err != nil {
		return models.Run{}, fmt.Errorf("save completed run: %w", err)
	}
	return next, nil
}

// Reset restarts today's run in place: every line back to zero.
func (s *CountingService) Reset(ctx context.Context, locKey string) (models.Run, error) {
	run, err := s.Get(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	next := models.Reset(run, time.Now())
	if err := s.repo.Save(ctx, next); err != nil {
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}
	return next, nil
}

// ApplyUsage subtracts consumed base quantities from today's run, flooring
// each line at zero. Lines absent from usage keep their counts.
func (s *CountingService) ApplyUsage(ctx context.Context, locKey string, usage map[string]float64) (models.Run, error) {
	run, err := s.Get(ctx, locKey)
	if err != nil {
		return models.Run{}, err
	}
	next := run
	for i, l := range next.Lines {
		consumed, ok := usage[l.ItemID]
		if !ok || consumed <= 0 {
			continue
		}
		updated, set := models.SetQuantity(next, i, l.Qty-consumed)
		if set {
			next = updated
		}
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}
	return next, nil
}

// OnHand returns today's counted base quantity for (item, location), zero
// when no run exists or the item is uncounted.
func (s *CountingService) OnHand(ctx context.Context, itemID, locKey string) (float64, error) {
	snapshot, err := s.OnHandSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snapshot[locKey][itemID], nil
}

// OnHandSnapshot returns today's counted base quantities for every
// location, keyed by location key then item id. Locations without a run
// today are absent; lookups on the result read as zero.
func (s *CountingService) OnHandSnapshot(ctx context.Context) (map[string]map[string]float64, error) {
	runs, err := s.repo.Runs(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := map[string]map[string]float64{}
	for _, loc := range catalogmodels.Locations() {
		run, ok := runs[models.RunID(loc.Key(), now)]
		if !ok {
			continue
		}
		m := make(map[string]float64, len(run.Lines))
		for _, l := range run.Lines {
			m[l.ItemID] = l.Qty
		}
		out[loc.Key()] = m
	}
	return out, nil
}

// ExportCSV renders today's run in the standard export format.
func (s *CountingService) ExportCSV(ctx context.Context, locKey string) (filename string, header []string, rows [][]string, err error) {
	run, err := s.Get(ctx, locKey)
	if err != nil {
		return "", nil, nil, err
	}
	header = []string{"Item ID", "Item Name", "Unit", "Quantity (base)"}
	rows = make([][]string, len(run.Lines))
	for i, l := range run.Lines {
		rows[i] = []string{l.ItemID, l.Name, l.Unit, strconv.FormatFloat(l.Qty, 'f', -1, 64)}
	}
	filename = "inventory_" + catalogmodels.Slug(locKey) + "_" + time.Now().Format("2006-01-02") + ".csv"
	return filename, header, rows, nil
}
