package models

import (
	"time"

	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
)

// Line is one countable item within a run. Name and Unit are snapshots of
// the catalog at reconcile time; Qty is stored in the item's base unit.
type Line struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Unit   string  `json:"unit,omitempty"`
	Qty    float64 `json:"qty"`
}

// Run is one counting session: one location, one local calendar day.
// Completing a run stamps CompletedAt but does not lock it; further edits
// and re-exports are allowed.
type Run struct {
	RunID        string     `json:"run_id"`
	Group        string     `json:"group"`
	LocationKey  string     `json:"location_key"`
	LocationName string     `json:"location_name"`
	DateLocalISO string     `json:"date_local_iso"`
	Index        int        `json:"index"`
	Lines        []Line     `json:"lines"`
	By           string     `json:"by,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// DayStamp returns the local midnight of now, rendered in UTC. Two visits
// within the same local day produce the same stamp.
func DayStamp(now time.Time) string {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.UTC().Format(time.RFC3339)
}

// RunID is deterministic from location and local day, so re-opening the
// same day resumes the existing run instead of duplicating it.
func RunID(locKey string, now time.Time) string {
	return locKey + "__" + DayStamp(now)
}

// NewRun starts a fresh run with every assigned item at quantity zero, in
// catalog order.
func NewRun(loc catalogmodels.Location, items []catalogmodels.Item, by string, now time.Time) Run {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{ItemID: it.ID, Name: it.Name, Unit: baseUnitOf(it)}
	}
	return Run{
		RunID:        RunID(loc.Key(), now),
		Group:        loc.Group,
		LocationKey:  loc.Key(),
		LocationName: loc.Name,
		DateLocalISO: DayStamp(now),
		Lines:        lines,
		By:           by,
		StartedAt:    now.UTC(),
	}
}

func baseUnitOf(it catalogmodels.Item) string {
	if it.Uom != nil {
		return it.Uom.Base
	}
	return ""
}

// Reconcile re-derives the run's line set against the live catalog for its
// location: quantities survive for items still assigned, name and unit
// snapshots refresh, newly assigned items append at zero, removed items
// drop, and the cursor re-clamps into range. The input run is unchanged;
// when nothing differs the same value is returned.
func Reconcile(run Run, items []catalogmodels.Item) Run {
	existing := make(map[string]Line, len(run.Lines))
	for _, l := range run.Lines {
		existing[l.ItemID] = l
	}

	merged := make([]Line, len(items))
	for i, it := range items {
		if l, ok := existing[it.ID]; ok {
			l.Name = it.Name
			l.Unit = baseUnitOf(it)
			merged[i] = l
		} else {
			merged[i] = Line{ItemID: it.ID, Name: it.Name, Unit: baseUnitOf(it)}
		}
	}

	same := len(merged) == len(run.Lines)
	if same {
		for i, l := range merged {
			if l != run.Lines[i] {
				same = false
				break
			}
		}
	}

	out := run
	out.Index = clampIndex(run.Index, len(merged))
	if same {
		return out
	}
	out.Lines = merged
	return out
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		if n == 0 {
			return 0
		}
		return n - 1
	}
	return idx
}

// SetQuantity stores a base-unit quantity on the line at idx, clamped to
// non-negative. ok is false when idx is out of range.
func SetQuantity(run Run, idx int, baseQty float64) (Run, bool) {
	if idx < 0 || idx >= len(run.Lines) {
		return run, false
	}
	if baseQty < 0 {
		baseQty = 0
	}
	lines := make([]Line, len(run.Lines))
	copy(lines, run.Lines)
	lines[idx].Qty = baseQty
	out := run
	out.Lines = lines
	return out, true
}

// Advance reconciles against the catalog, then moves the cursor by delta,
// clamped into range. Reconciling first keeps a mid-run catalog edit from
// leaving the cursor on a stale line.
func Advance(run Run, items []catalogmodels.Item, delta int) Run {
	out := Reconcile(run, items)
	out.Index = clampIndex(out.Index+delta, len(out.Lines))
	return out
}

// JumpTo reconciles, then moves the cursor to idx, clamped into range.
func JumpTo(run Run, items []catalogmodels.Item, idx int) Run {
	out := Reconcile(run, items)
	out.Index = clampIndex(idx, len(out.Lines))
	return out
}

// Complete stamps the completion time. The run stays editable.
func Complete(run Run, now time.Time) Run {
	t := now.UTC()
	out := run
	out.CompletedAt = &t
	return out
}

// Reset zeroes every line, rewinds the cursor, and clears the completion
// stamp, restarting the day's count in place.
func Reset(run Run, now time.Time) Run {
	lines := make([]Line, len(run.Lines))
	copy(lines, run.Lines)
	for i := range lines {
		lines[i].Qty = 0
	}
	out := run
	out.Lines = lines
	out.Index = 0
	out.CompletedAt = nil
	out.StartedAt = now.UTC()
	return out
}

// OnHand returns the counted base-unit quantity for an item, 0 when absent.
func (r Run) OnHand(itemID string) float64 {
	for _, l := range r.Lines {
		if l.ItemID == itemID {
			return l.Qty
		}
	}
	return 0
}
