package services

import (
	"math"
	"reflect"
	"testing"

	"github.com/ghuser/parstock/services/catalog/domain/models"
)

func caseItem(perSleeve float64) *models.Item {
	return &models.Item{
		ID:   "seed-milk-oat",
		Name: "Oat",
		Uom:  &models.Uom{Base: "case", PerBase: map[string]float64{"sleeve": perSleeve}},
	}
}

func TestToBase_ChildUnit(t *testing.T) {
	it := caseItem(12)
	if got := ToBase(it, 30, "sleeve"); got != 2.5 {
		t.Fatalf("expected 30 sleeves = 2.5 cases, got %v", got)
	}
	if got := FromBase(it, 2.5, "sleeve"); got != 30 {
		t.Fatalf("expected 2.5 cases = 30 sleeves, got %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	it := caseItem(20)
	for _, x := range []float64{0, 1, 2.5, 7, 133.25, 10000} {
		back := ToBase(it, FromBase(it, x, "sleeve"), "sleeve")
		if math.Abs(back-x) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", x, back)
		}
	}
}

func TestIdentityFallback(t *testing.T) {
	tests := []struct {
		name string
		item *models.Item
		unit string
	}{
		{"nil item", nil, "sleeve"},
		{"no uom", &models.Item{ID: "x", Name: "X"}, "sleeve"},
		{"unit equals base", caseItem(12), "case"},
		{"zero factor", caseItem(0), "sleeve"},
		{"negative factor", caseItem(-4), "sleeve"},
		{"infinite factor", caseItem(math.Inf(1)), "sleeve"},
		{"nan factor", caseItem(math.NaN()), "sleeve"},
		{"undeclared unit", caseItem(12), "pallet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBase(tt.item, 7.5, tt.unit); got != 7.5 {
				t.Fatalf("ToBase: expected identity 7.5, got %v", got)
			}
			if got := FromBase(tt.item, 7.5, tt.unit); got != 7.5 {
				t.Fatalf("FromBase: expected identity 7.5, got %v", got)
			}
		})
	}
}

func TestUnitsFor(t *testing.T) {
	t.Run("children sorted then base, deduped", func(t *testing.T) {
		it := &models.Item{Uom: &models.Uom{
			Base:    "case",
			PerBase: map[string]float64{"sleeve": 20, "each": 200, "case": 1},
		}}
		want := []string{"case", "each", "sleeve"}
		// "case" is both a child key and the base; it appears once, at its
		// sorted child position.
		if got := UnitsFor(it); !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("zero-factor child still listed", func(t *testing.T) {
		it := caseItem(0)
		want := []string{"sleeve", "case"}
		if got := UnitsFor(it); !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("no uom falls back to each", func(t *testing.T) {
		if got := UnitsFor(nil); !reflect.DeepEqual(got, []string{"each"}) {
			t.Fatalf("expected [each], got %v", got)
		}
	})
}
