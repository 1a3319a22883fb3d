package handlers

import (
	"net/http"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/catalog/application/services"
	"github.com/ghuser/parstock/services/catalog/domain/models"
)

// LocationResponse is one fleet location.
type LocationResponse struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	IsWarehouse bool   `json:"is_warehouse"`
}

// ListLocationsHandler handles GET /catalog/locations.
type ListLocationsHandler struct{}

func NewListLocationsHandler() *ListLocationsHandler {
	return &ListLocationsHandler{}
}

func (h *ListLocationsHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	locs := models.Locations()
	out := make([]LocationResponse, len(locs))
	for i, l := range locs {
		out[i] = LocationResponse{Group: l.Group, Name: l.Name, Key: l.Key(), IsWarehouse: l.IsWarehouse}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"locations": out})
}

// UnitChoiceRequest records a preferred counting unit for (location, item).
type UnitChoiceRequest struct {
	Location string `json:"location" validate:"required"`
	ItemID   string `json:"item_id" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
}

// PutUnitChoiceHandler handles PUT /catalog/unit-choice.
type PutUnitChoiceHandler struct {
	svc *appsvcs.Services
}

func NewPutUnitChoiceHandler(svc *appsvcs.Services) *PutUnitChoiceHandler {
	return &PutUnitChoiceHandler{svc: svc}
}

func (h *PutUnitChoiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UnitChoiceRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Catalog.SetUnitChoice(r.Context(), req.Location, req.ItemID, req.Unit); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
