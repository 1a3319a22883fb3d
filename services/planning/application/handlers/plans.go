package handlers

import (
	"net/http"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	appsvcs "github.com/ghuser/parstock/services/planning/application/services"
)

// queryList reads a repeatable query parameter, e.g. ?dest=a&dest=b.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// PicklistHandler handles GET /planning/picklist. Destinations default to
// every cafe and sources to the warehouses; ?format=csv downloads the
// per-destination rows.
type PicklistHandler struct {
	svc *appsvcs.Services
}

func NewPicklistHandler(svc *appsvcs.Services) *PicklistHandler {
	return &PicklistHandler{svc: svc}
}

func (h *PicklistHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dests := queryList(r, "dest")
	sources := queryList(r, "source")
	if wantsCSV(r) {
		filename, header, rows, err := h.svc.Planning.PicklistCSV(r.Context(), dests, sources)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.CSV(w, filename, header, rows)
		return
	}
	rows, pulls, err := h.svc.Planning.Picklist(r.Context(), dests, sources)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows, "pull": pulls})
}

// SuggestHandler handles GET /planning/suggestion?item=&location=&unit=, the
// per-item replenishment hint shown beside the counter.
type SuggestHandler struct {
	svc *appsvcs.Services
}

func NewSuggestHandler(svc *appsvcs.Services) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

func (h *SuggestHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestion, err := h.svc.Planning.Suggest(r.Context(), q.Get("item"), q.Get("location"), q.Get("unit"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, suggestion)
}

// OrderListHandler handles GET /planning/order.
type OrderListHandler struct {
	svc *appsvcs.Services
}

func NewOrderListHandler(svc *appsvcs.Services) *OrderListHandler {
	return &OrderListHandler{svc: svc}
}

func (h *OrderListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dests := queryList(r, "dest")
	if wantsCSV(r) {
		filename, header, rows, err := h.svc.Planning.OrderCSV(r.Context(), dests)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.CSV(w, filename, header, rows)
		return
	}
	rows, err := h.svc.Planning.OrderList(r.Context(), dests)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

// ProductionListHandler handles GET /planning/production.
type ProductionListHandler struct {
	svc *appsvcs.Services
}

func NewProductionListHandler(svc *appsvcs.Services) *ProductionListHandler {
	return &ProductionListHandler{svc: svc}
}

func (h *ProductionListHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dests := queryList(r, "dest")
	if wantsCSV(r) {
		filename, header, rows, err := h.svc.Planning.ProductionCSV(r.Context(), dests)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.CSV(w, filename, header, rows)
		return
	}
	rows, err := h.svc.Planning.ProductionList(r.Context(), dests)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}
