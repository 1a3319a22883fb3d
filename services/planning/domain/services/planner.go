// Package services holds the planning context's pure domain services:
// replenishment math over PAR targets and counted stock, and consumption
// math over sales and recipes.
package services

import (
	"math"
	"sort"
	"strings"

	catalogmodels "github.com/ghuser/parstock/services/catalog/domain/models"
)

// Stock is today's counted base quantities, keyed by location key then item
// id. Locations without a run and uncounted items both read as zero.
type Stock map[string]map[string]float64

// At returns the counted base quantity for (location, item).
func (s Stock) At(locKey, itemID string) float64 {
	return s[locKey][itemID]
}

// Need is the base-unit shortfall of one item at one destination:
// max(0, par - onHand). Items without a PAR at the location have no need.
func Need(it catalogmodels.Item, locKey string, stock Stock) float64 {
	par := it.ParAt(locKey)
	if par <= 0 {
		return 0
	}
	return math.Max(0, par-stock.At(locKey, it.ID))
}

// PicklistRow is one line of the per-destination picklist.
type PicklistRow struct {
	Destination string  `json:"destination"`
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Qty         float64 `json:"qty"`
}

// PullRow consolidates one item's need across every destination, with the
// quantity currently available at each source location.
type PullRow struct {
	ItemID    string             `json:"item_id"`
	Name      string             `json:"name"`
	NeedTotal float64            `json:"need_total"`
	Available map[string]float64 `json:"available"`
}

// Picklist computes what to move: per-destination rows for every item with a
// positive need, plus a consolidated pull list showing availability at the
// source locations. Needs aggregate by item id.
func Picklist(items []catalogmodels.Item, stock Stock, dests, sources []catalogmodels.Location) ([]PicklistRow, []PullRow) {
	var rows []PicklistRow
	totals := map[string]float64{}
	names := map[string]string{}

	for _, dest := range dests {
		key := dest.Key()
		for _, it := range items {
			if !it.TrackedAt(key) {
				continue
			}
			need := Need(it, key, stock)
			if need <= 0 {
				continue
			}
			rows = append(rows, PicklistRow{Destination: key, ItemID: it.ID, Name: it.Name, Qty: need})
			totals[it.ID] += need
			names[it.ID] = it.Name
		}
	}

	pulls := make([]PullRow, 0, len(totals))
	for id, total := range totals {
		avail := make(map[string]float64, len(sources))
		for _, src := range sources {
			avail[src.Key()] = stock.At(src.Key(), id)
		}
		pulls = append(pulls, PullRow{ItemID: id, Name: names[id], NeedTotal: total, Available: avail})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Destination != rows[j].Destination {
			return rows[i].Destination < rows[j].Destination
		}
		return lessName(rows[i].Name, rows[j].Name)
	})
	sort.SliceStable(pulls, func(i, j int) bool { return lessName(pulls[i].Name, pulls[j].Name) })
	return rows, pulls
}

// OrderRow is one line of the purchase order suggestion.
type OrderRow struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	NeedTotal float64 `json:"need_total"`
	Available float64 `json:"available"`
	OrderQty  float64 `json:"order_qty"`
}

// OrderList suggests purchases for bought items: total need across the
// destinations, net of what the warehouses already hold, rounded up to the
// item's order multiple. Items with nothing to order are omitted.
func OrderList(items []catalogmodels.Item, stock Stock, dests, warehouses []catalogmodels.Location) []OrderRow {
	var out []OrderRow
	for _, it := range items {
		if it.ReplenishBy() != catalogmodels.MakeBuyBuy {
			continue
		}
		need := totalNeed(it, stock, dests)
		if need <= 0 {
			continue
		}
		var avail float64
		for _, wh := range warehouses {
			avail += stock.At(wh.Key(), it.ID)
		}
		qty := roundUpToMultiple(math.Max(0, need-avail), it.OrderMultiple)
		if qty <= 0 {
			continue
		}
		out = append(out, OrderRow{ItemID: it.ID, Name: it.Name, NeedTotal: need, Available: avail, OrderQty: qty})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

// ProductionRow is one line of the make list.
type ProductionRow struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name"`
	NeedTotal  float64 `json:"need_total"`
	OnHand     float64 `json:"on_hand"`
	ProduceQty float64 `json:"produce_qty"`
}

// ProductionList suggests batches for made items: total need across the
// destinations, net of stock at every location in the fleet. Items with
// nothing to produce are omitted.
func ProductionList(items []catalogmodels.Item, stock Stock, dests, all []catalogmodels.Location) []ProductionRow {
	var out []ProductionRow
	for _, it := range items {
		if it.ReplenishBy() != catalogmodels.MakeBuyMake {
			continue
		}
		need := totalNeed(it, stock, dests)
		if need <= 0 {
			continue
		}
		var onHand float64
		for _, loc := range all {
			onHand += stock.At(loc.Key(), it.ID)
		}
		qty := math.Max(0, need-onHand)
		if qty <= 0 {
			continue
		}
		out = append(out, ProductionRow{ItemID: it.ID, Name: it.Name, NeedTotal: need, OnHand: onHand, ProduceQty: qty})
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

func totalNeed(it catalogmodels.Item, stock Stock, dests []catalogmodels.Location) float64 {
	var total float64
	for _, dest := range dests {
		if !it.TrackedAt(dest.Key()) {
			continue
		}
		total += Need(it, dest.Key(), stock)
	}
	return total
}

// Suggest turns a base-unit need into a replenishment suggestion for one
// item: bought items round up to the order multiple, made items keep the raw
// shortfall.
func Suggest(it catalogmodels.Item, need float64) float64 {
	if need <= 0 {
		return 0
	}
	if it.ReplenishBy() == catalogmodels.MakeBuyMake {
		return need
	}
	return roundUpToMultiple(need, it.OrderMultiple)
}

// roundUpToMultiple rounds qty up to the next whole multiple. A multiple of
// one or less leaves the quantity as-is (apart from fractional base amounts,
// which still round up to a whole unit).
func roundUpToMultiple(qty float64, multiple int) float64 {
	if qty <= 0 {
		return 0
	}
	m := float64(multiple)
	if m < 1 {
		m = 1
	}
	return math.Ceil(qty/m) * m
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}
