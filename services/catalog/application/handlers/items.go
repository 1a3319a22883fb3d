package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/catalog/application/services"
	"github.com/ghuser/parstock/services/catalog/domain/models"
	domainsvcs "github.com/ghuser/parstock/services/catalog/domain/services"
)

// ItemResponse is the resolved item representation returned by the API.
type ItemResponse struct {
	models.Item
	Units []string `json:"units"`
}

func toItemResponse(it models.Item) ItemResponse {
	return ItemResponse{Item: it, Units: domainsvcs.UnitsFor(&it)}
}

// ListItemsHandler handles GET /catalog/items.
// Optional query params: location (key filter + name sort), category.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog.Resolved(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	var items []models.Item
	if loc := r.URL.Query().Get("location"); loc != "" {
		items = catalog.ItemsForLocation(loc)
	} else {
		items = catalog.Items()
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filtered := items[:0:0]
		for _, it := range items {
			if it.Category == cat {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      out,
		"categories": catalog.Categories(),
	})
}

// CreateItemRequest is the request body for POST /catalog/items.
type CreateItemRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=255"`
	Category  string   `json:"category" validate:"max=100"`
	Locations []string `json:"locations" validate:"required,min=1"`
}

// PostItemHandler handles POST /catalog/items.
type PostItemHandler struct {
	svc *appsvcs.Services
}

func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}
	item, err := h.svc.Catalog.AddItem(r.Context(), req.Name, req.Category, req.Locations)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// HideItemHandler handles POST /catalog/items/{id}/hide. Hidden items keep
// their stored definition and overrides but drop out of every resolved view.
type HideItemHandler struct {
	svc *appsvcs.Services
}

func NewHideItemHandler(svc *appsvcs.Services) *HideItemHandler {
	return &HideItemHandler{svc: svc}
}

func (h *HideItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Catalog.HideItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CopyAttributesRequest names the source item and optionally narrows the
// copied fields (defaults to the operational set).
type CopyAttributesRequest struct {
	SourceID string   `json:"source_id" validate:"required"`
	Fields   []string `json:"fields"`
}

// CopyAttributesHandler handles POST /catalog/items/{id}/copy-attributes.
type CopyAttributesHandler struct {
	svc *appsvcs.Services
}

func NewCopyAttributesHandler(svc *appsvcs.Services) *CopyAttributesHandler {
	return &CopyAttributesHandler{svc: svc}
}

func (h *CopyAttributesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CopyAttributesRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Catalog.CopyAttributes(r.Context(), chi.URLParam(r, "id"), req.SourceID, req.Fields...); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveOverridesRequest carries a batch of per-item patches keyed by item id.
type SaveOverridesRequest struct {
	Overrides map[string]models.Override `json:"overrides" validate:"required,min=1"`
}

// PutOverridesHandler handles PUT /catalog/overrides.
type PutOverridesHandler struct {
	svc *appsvcs.Services
}

func NewPutOverridesHandler(svc *appsvcs.Services) *PutOverridesHandler {
	return &PutOverridesHandler{svc: svc}
}

func (h *PutOverridesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SaveOverridesRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Catalog.SaveOverrides(r.Context(), req.Overrides); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
