package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/planning/application/services"
	"github.com/ghuser/parstock/services/planning/domain/models"
)

// ListBomsHandler handles GET /planning/boms.
type ListBomsHandler struct {
	svc *appsvcs.Services
}

func NewListBomsHandler(svc *appsvcs.Services) *ListBomsHandler {
	return &ListBomsHandler{svc: svc}
}

func (h *ListBomsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	boms, err := h.svc.Planning.Boms(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"boms": boms})
}

// ComponentRequest binds one recipe slot to an item.
type ComponentRequest struct {
	ItemID string  `json:"item_id" validate:"required"`
	Qty    float64 `json:"qty" validate:"gt=0"`
	Unit   string  `json:"unit"`
}

// PutBomRequest upserts a recipe. The product key derives from SKU when
// present, otherwise the lowercased trimmed name.
type PutBomRequest struct {
	Name     string             `json:"name" validate:"required,min=1,max=255"`
	SKU      string             `json:"sku" validate:"max=100"`
	Type     string             `json:"type" validate:"omitempty,oneof=drink pastry other"`
	Cup      *ComponentRequest  `json:"cup" validate:"omitempty"`
	Lid      *ComponentRequest  `json:"lid" validate:"omitempty"`
	Milk     *ComponentRequest  `json:"milk" validate:"omitempty"`
	Espresso *ComponentRequest  `json:"espresso" validate:"omitempty"`
	Syrup    *ComponentRequest  `json:"syrup" validate:"omitempty"`
	Bag      *ComponentRequest  `json:"bag" validate:"omitempty"`
}

func component(c *ComponentRequest) *models.Component {
	if c == nil {
		return nil
	}
	return &models.Component{ItemID: c.ItemID, Qty: c.Qty, Unit: c.Unit}
}

// PutBomHandler handles PUT /planning/boms.
type PutBomHandler struct {
	svc *appsvcs.Services
}

func NewPutBomHandler(svc *appsvcs.Services) *PutBomHandler {
	return &PutBomHandler{svc: svc}
}

func (h *PutBomHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PutBomRequest](w, r)
	if !ok {
		return
	}
	bom := models.Bom{
		Name: req.Name,
		SKU:  req.SKU,
		Type: models.ProductType(req.Type),
		Comps: models.Comps{
			Cup:      component(req.Cup),
			Lid:      component(req.Lid),
			Milk:     component(req.Milk),
			Espresso: component(req.Espresso),
			Syrup:    component(req.Syrup),
			Bag:      component(req.Bag),
		},
	}
	saved, err := h.svc.Planning.SaveBom(r.Context(), bom)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

// DeleteBomHandler handles DELETE /planning/boms/{key}.
type DeleteBomHandler struct {
	svc *appsvcs.Services
}

func NewDeleteBomHandler(svc *appsvcs.Services) *DeleteBomHandler {
	return &DeleteBomHandler{svc: svc}
}

func (h *DeleteBomHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Planning.DeleteBom(r.Context(), chi.URLParam(r, "key")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SlotOptionsHandler handles GET /planning/boms/slot-options?slot=, the item
// choices an editor offers for one recipe slot.
type SlotOptionsHandler struct {
	svc *appsvcs.Services
}

func NewSlotOptionsHandler(svc *appsvcs.Services) *SlotOptionsHandler {
	return &SlotOptionsHandler{svc: svc}
}

func (h *SlotOptionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Planning.SlotOptions(r.Context(), r.URL.Query().Get("slot"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}
