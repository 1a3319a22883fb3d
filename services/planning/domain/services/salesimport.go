package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ghuser/parstock/services/planning/domain"
	"github.com/ghuser/parstock/services/planning/domain/models"
)

// ColumnHints designates which CSV columns carry the product name, SKU and
// quantity sold. Empty fields are guessed from the header row.
type ColumnHints struct {
	Name string `json:"name,omitempty"`
	SKU  string `json:"sku,omitempty"`
	Qty  string `json:"qty,omitempty"`
}

var (
	nameHeaderHints = []string{"item", "name", "menu"}
	skuHeaderHints  = []string{"sku", "plu", "id", "code"}
	qtyHeaderHints  = []string{"qty", "quantity", "sold", "units"}
)

// ParseSalesCSV reads a point-of-sale export and aggregates it into sold
// products keyed by ProductKey. Rows with neither a SKU nor a name are
// skipped; quantities parse leniently, with junk reading as zero.
func ParseSalesCSV(r io.Reader, hints ColumnHints) ([]SoldProduct, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, domain.ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameIdx := columnIndex(header, hints.Name, nameHeaderHints)
	skuIdx := columnIndex(header, hints.SKU, skuHeaderHints)
	qtyIdx := columnIndex(header, hints.Qty, qtyHeaderHints)
	if qtyIdx < 0 {
		return nil, domain.ErrNoQuantityColumn
	}

	totals := map[string]*SoldProduct{}
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows++

		name := field(rec, nameIdx)
		sku := field(rec, skuIdx)
		key := models.ProductKey(sku, name)
		if key == "" {
			continue
		}
		qty := safeNum(field(rec, qtyIdx))

		if agg, ok := totals[key]; ok {
			agg.Qty += qty
			if agg.Name == "" {
				agg.Name = strings.TrimSpace(name)
			}
			continue
		}
		totals[key] = &SoldProduct{Key: key, Name: strings.TrimSpace(name), Qty: qty}
	}
	if rows == 0 {
		return nil, domain.ErrEmptyImport
	}

	out := make([]SoldProduct, 0, len(totals))
	for _, p := range totals {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out, nil
}

// columnIndex resolves a column by explicit designation first, then by
// header guessing: the first header containing one of the hint fragments.
func columnIndex(header []string, designated string, fragments []string) int {
	if designated != "" {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(designated)) {
				return i
			}
		}
	}
	for _, frag := range fragments {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), frag) {
				return i
			}
		}
	}
	return -1
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

var numericJunk = regexp.MustCompile(`[^0-9.\-]`)

// safeNum parses quantities the way POS exports write them: currency
// symbols and thousand separators stripped, anything unparseable is zero.
func safeNum(s string) float64 {
	cleaned := numericJunk.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
