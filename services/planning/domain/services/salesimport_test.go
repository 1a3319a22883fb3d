package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/ghuser/parstock/services/planning/domain"
)

func TestParseSalesCSV_GuessesColumns(t *testing.T) {
	csv := "Menu Item,PLU,Qty Sold\n" +
		"Latte 12oz,latte-12,30\n" +
		"Latte 12oz,latte-12,10\n" +
		"Croissant,,5\n"

	got, err := ParseSalesCSV(strings.NewReader(csv), ColumnHints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 aggregated products, got %d: %+v", len(got), got)
	}

	byKey := map[string]SoldProduct{}
	for _, p := range got {
		byKey[p.Key] = p
	}
	if p := byKey["latte-12"]; p.Qty != 40 || p.Name != "Latte 12oz" {
		t.Fatalf("SKU rows should aggregate: %+v", p)
	}
	if p := byKey["croissant"]; p.Qty != 5 {
		t.Fatalf("SKU-less rows key by lowercased name: %+v", p)
	}
}

func TestParseSalesCSV_ExplicitDesignationWins(t *testing.T) {
	csv := "Description,Internal ID,Count,Qty Shipped\n" +
		"Mocha,mocha-16,7,999\n"

	got, err := ParseSalesCSV(strings.NewReader(csv), ColumnHints{
		Name: "Description", SKU: "Internal ID", Qty: "Count",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Key != "mocha-16" || got[0].Qty != 7 {
		t.Fatalf("designated columns ignored: %+v", got)
	}
}

func TestParseSalesCSV_LenientQuantities(t *testing.T) {
	csv := "Item,Qty\n" +
		"Latte,\"1,204\"\n" +
		"Mocha, 3 ea\n" +
		"Chai,n/a\n"

	got, err := ParseSalesCSV(strings.NewReader(csv), ColumnHints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byKey := map[string]float64{}
	for _, p := range got {
		byKey[p.Key] = p.Qty
	}
	if byKey["latte"] != 1204 {
		t.Fatalf("thousand separators should strip, got %v", byKey["latte"])
	}
	if byKey["mocha"] != 3 {
		t.Fatalf("unit suffixes should strip, got %v", byKey["mocha"])
	}
	if byKey["chai"] != 0 {
		t.Fatalf("junk quantities read as zero, got %v", byKey["chai"])
	}
}

func TestParseSalesCSV_SkipsBlankKeys(t *testing.T) {
	csv := "Item,Qty\n,5\n  ,3\nLatte,1\n"
	got, err := ParseSalesCSV(strings.NewReader(csv), ColumnHints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Key != "latte" {
		t.Fatalf("blank keys must be skipped: %+v", got)
	}
}

func TestParseSalesCSV_Errors(t *testing.T) {
	t.Run("no quantity column", func(t *testing.T) {
		_, err := ParseSalesCSV(strings.NewReader("Item,Price\nLatte,4.50\n"), ColumnHints{})
		if !errors.Is(err, domain.ErrNoQuantityColumn) {
			t.Fatalf("expected ErrNoQuantityColumn, got %v", err)
		}
	})
	t.Run("header only", func(t *testing.T) {
		_, err := ParseSalesCSV(strings.NewReader("Item,Qty\n"), ColumnHints{})
		if !errors.Is(err, domain.ErrEmptyImport) {
			t.Fatalf("expected ErrEmptyImport, got %v", err)
		}
	})
	t.Run("empty file", func(t *testing.T) {
		_, err := ParseSalesCSV(strings.NewReader(""), ColumnHints{})
		if !errors.Is(err, domain.ErrEmptyImport) {
			t.Fatalf("expected ErrEmptyImport, got %v", err)
		}
	})
}
