package handlers

import (
	"net/http"

	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/planning/application/services"
	planningsvcs "github.com/ghuser/parstock/services/planning/domain/services"
)

const maxSalesUpload = 10 << 20 // 10 MiB

// ImportSalesHandler handles POST /planning/sales-import: a multipart upload
// of a point-of-sale CSV under the "file" field. Optional name_column,
// sku_column and qty_column fields designate columns explicitly; anything
// left blank is guessed from the header row.
type ImportSalesHandler struct {
	svc *appsvcs.Services
}

func NewImportSalesHandler(svc *appsvcs.Services) *ImportSalesHandler {
	return &ImportSalesHandler{svc: svc}
}

func (h *ImportSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSalesUpload); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	hints := planningsvcs.ColumnHints{
		Name: r.FormValue("name_column"),
		SKU:  r.FormValue("sku_column"),
		Qty:  r.FormValue("qty_column"),
	}
	result, err := h.svc.Planning.ImportSales(r.Context(), file, hints)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// ApplyUsageRequest subtracts imported consumption from today's run at a
// location. Usage maps item ids to consumed base quantities.
type ApplyUsageRequest struct {
	Location string             `json:"location" validate:"required"`
	Usage    map[string]float64 `json:"usage" validate:"required,min=1"`
}

// ApplyUsageHandler handles POST /planning/prefill.
type ApplyUsageHandler struct {
	svc *appsvcs.Services
}

func NewApplyUsageHandler(svc *appsvcs.Services) *ApplyUsageHandler {
	return &ApplyUsageHandler{svc: svc}
}

func (h *ApplyUsageHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ApplyUsageRequest](w, r)
	if !ok {
		return
	}
	run, err := h.svc.Planning.ApplyUsage(r.Context(), req.Location, req.Usage)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}
