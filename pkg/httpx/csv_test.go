package httpx_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/parstock/pkg/httpx"
)

func TestCSV_writesHeaderAndRows(t *testing.T) {
	w := httptest.NewRecorder()
	err := httpx.CSV(w, "picklist.csv",
		[]string{"Destination", "Item", "Qty (base)"},
		[][]string{
			{"Marigold: Mueller", "Oat Milk", "4"},
			{"Marigold: South Lamar", "Cold Cups 16oz", "2"},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "picklist.csv") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), w.Body.String())
	}
	if lines[0] != "Destination,Item,Qty (base)" {
		t.Errorf("unexpected header row: %q", lines[0])
	}
}

func TestCSV_escapesQuotesAndCommas(t *testing.T) {
	w := httptest.NewRecorder()
	err := httpx.CSV(w, "items.csv",
		[]string{"Item", "Qty"},
		[][]string{{`Whole Bean — "House", 5lb`, "3"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	want := `"Whole Bean — ""House"", 5lb",3`
	if lines[1] != want {
		t.Errorf("expected %q, got %q", want, lines[1])
	}
}
