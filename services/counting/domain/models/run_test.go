package models

import (
	"testing"
	"time"

	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
)

var testLoc = catalogmodels.Location{Group: "Marigold", Name: "Mueller"}

func catalogItems(names ...string) []catalogmodels.Item {
	items := make([]catalogmodels.Item, len(names))
	for i, n := range names {
		items[i] = catalogmodels.Item{ID: "item-" + n, Name: n, Locations: []string{testLoc.Key()}}
	}
	return items
}

func TestRunID_DeterministicPerLocalDay(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	morning := time.Date(2026, 9, 1, 6, 30, 0, 0, loc)
	evening := time.Date(2026, 9, 1, 22, 45, 0, 0, loc)
	nextDay := time.Date(2026, 9, 2, 0, 1, 0, 0, loc)

	if RunID("Marigold:Mueller", morning) != RunID("Marigold:Mueller", evening) {
		t.Fatal("same local day must produce the same run id")
	}
	if RunID("Marigold:Mueller", morning) == RunID("Marigold:Mueller", nextDay) {
		t.Fatal("different local days must produce different run ids")
	}
	if RunID("Marigold:Mueller", morning) == RunID("Depot:Burnet", morning) {
		t.Fatal("different locations must produce different run ids")
	}
}

func TestNewRun_AllLinesAtZero(t *testing.T) {
	run := NewRun(testLoc, catalogItems("Almond", "Oat"), "dana", time.Now())
	if len(run.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(run.Lines))
	}
	for _, l := range run.Lines {
		if l.Qty != 0 {
			t.Fatalf("new run lines must start at 0, got %v", l.Qty)
		}
	}
	if run.Index != 0 || run.By != "dana" || run.CompletedAt != nil {
		t.Fatalf("unexpected new run state: %+v", run)
	}
}

func TestReconcile_PreservesCountsAcrossCatalogDrift(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A", "B"), "", time.Now())
	run, ok := SetQuantity(run, 0, 5)
	if !ok {
		t.Fatal("set quantity failed")
	}
	run.Index = 1

	// B removed, C added.
	got := Reconcile(run, catalogItems("A", "C"))

	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got.Lines))
	}
	if got.Lines[0].ItemID != "item-A" || got.Lines[0].Qty != 5 {
		t.Fatalf("surviving item lost its count: %+v", got.Lines[0])
	}
	if got.Lines[1].ItemID != "item-C" || got.Lines[1].Qty != 0 {
		t.Fatalf("new item should append at zero: %+v", got.Lines[1])
	}
	if got.OnHand("item-B") != 0 {
		t.Fatal("removed item should be gone")
	}
	if got.Index != 1 {
		t.Fatalf("cursor should stay in range, got %d", got.Index)
	}
}

func TestReconcile_ClampsCursorWhenLinesShrink(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A", "B", "C"), "", time.Now())
	run.Index = 2

	got := Reconcile(run, catalogItems("A"))
	if got.Index != 0 {
		t.Fatalf("cursor should clamp to last line, got %d", got.Index)
	}
}

func TestReconcile_RefreshesSnapshots(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A"), "", time.Now())
	run, _ = SetQuantity(run, 0, 3)

	renamed := []catalogmodels.Item{{
		ID: "item-A", Name: "A (Barista)",
		Locations: []string{testLoc.Key()},
		Uom:       &catalogmodels.Uom{Base: "case", PerBase: map[string]float64{}},
	}}
	got := Reconcile(run, renamed)

	if got.Lines[0].Name != "A (Barista)" || got.Lines[0].Unit != "case" {
		t.Fatalf("snapshots not refreshed: %+v", got.Lines[0])
	}
	if got.Lines[0].Qty != 3 {
		t.Fatalf("refresh must not touch the count, got %v", got.Lines[0].Qty)
	}
}

func TestReconcile_NoChangeReturnsEqualRun(t *testing.T) {
	items := catalogItems("A", "B")
	run := NewRun(testLoc, items, "", time.Now())
	got := Reconcile(run, items)
	if got.Index != run.Index || len(got.Lines) != len(run.Lines) {
		t.Fatal("reconcile of an unchanged run should be a no-op")
	}
	for i := range got.Lines {
		if got.Lines[i] != run.Lines[i] {
			t.Fatalf("line %d changed: %+v", i, got.Lines[i])
		}
	}
}

func TestSetQuantity_ClampsNegative(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A"), "", time.Now())
	run, _ = SetQuantity(run, 0, -4)
	if run.Lines[0].Qty != 0 {
		t.Fatalf("negative quantity must clamp to 0, got %v", run.Lines[0].Qty)
	}
	if _, ok := SetQuantity(run, 5, 1); ok {
		t.Fatal("out-of-range index must be rejected")
	}
}

func TestAdvanceAndJump_ClampIntoRange(t *testing.T) {
	items := catalogItems("A", "B", "C")
	run := NewRun(testLoc, items, "", time.Now())

	run = Advance(run, items, 10)
	if run.Index != 2 {
		t.Fatalf("advance should clamp to last line, got %d", run.Index)
	}
	run = Advance(run, items, -10)
	if run.Index != 0 {
		t.Fatalf("advance should clamp to first line, got %d", run.Index)
	}
	run = JumpTo(run, items, 1)
	if run.Index != 1 {
		t.Fatalf("jump to 1 failed, got %d", run.Index)
	}
	run = JumpTo(run, items, -3)
	if run.Index != 0 {
		t.Fatalf("jump should clamp below, got %d", run.Index)
	}
}

func TestComplete_DoesNotLock(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A"), "", time.Now())
	run = Complete(run, time.Now())
	if run.CompletedAt == nil {
		t.Fatal("complete must stamp CompletedAt")
	}
	run, ok := SetQuantity(run, 0, 7)
	if !ok || run.Lines[0].Qty != 7 {
		t.Fatal("completed runs must stay editable")
	}
}

func TestReset_ZeroesAndClearsCompletion(t *testing.T) {
	run := NewRun(testLoc, catalogItems("A", "B"), "", time.Now())
	run, _ = SetQuantity(run, 1, 9)
	run = Complete(run, time.Now())
	run.Index = 1

	run = Reset(run, time.Now())
	if run.Lines[1].Qty != 0 || run.Index != 0 || run.CompletedAt != nil {
		t.Fatalf("reset incomplete: %+v", run)
	}
}
