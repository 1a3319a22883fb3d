package handlers

import (
	"net/http"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/catalog/application/services"
)

// GetParSheetHandler handles GET /catalog/pars: the full PAR grid, each cell
// projected into its preferred display unit.
type GetParSheetHandler struct {
	svc *appsvcs.Services
}

func NewGetParSheetHandler(svc *appsvcs.Services) *GetParSheetHandler {
	return &GetParSheetHandler{svc: svc}
}

func (h *GetParSheetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Catalog.ParSheet(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

// ParEntryRequest is one PAR cell edit. Qty of zero or less clears the cell.
type ParEntryRequest struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
}

// PutParsRequest carries a batch of PAR sheet edits.
type PutParsRequest struct {
	Entries []ParEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// PutParsHandler handles PUT /catalog/pars.
type PutParsHandler struct {
	svc *appsvcs.Services
}

func NewPutParsHandler(svc *appsvcs.Services) *PutParsHandler {
	return &PutParsHandler{svc: svc}
}

func (h *PutParsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PutParsRequest](w, r)
	if !ok {
		return
	}
	entries := make([]appsvcs.ParEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = appsvcs.ParEntry{
			ItemID:      e.ItemID,
			LocationKey: e.Location,
			Qty:         e.Qty,
			Unit:        e.Unit,
		}
	}
	if err := h.svc.Catalog.SetPars(r.Context(), entries); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
