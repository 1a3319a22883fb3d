package handlers

import (
	"net/http"

	"github.com/ghuser/parstock/pkg/auth"
	"github.com/ghuser/parstock/pkg/errhttp"
	"github.com/ghuser/parstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/parstock/pkg/validator"
	appsvcs "github.com/ghuser/parstock/services/counting/application/services"
)

// StartRunRequest opens (or resumes) today's run for a location.
type StartRunRequest struct {
	Location string `json:"location" validate:"required"`
}

// StartRunHandler handles POST /counting/runs.
type StartRunHandler struct {
	svc *appsvcs.Services
}

func NewStartRunHandler(svc *appsvcs.Services) *StartRunHandler {
	return &StartRunHandler{svc: svc}
}

func (h *StartRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[StartRunRequest](w, r)
	if !ok {
		return
	}
	var by string
	if op, err := auth.OperatorFromCtx(r.Context()); err == nil {
		by = op.Name
	}
	run, err := h.svc.Counting.StartOrResume(r.Context(), req.Location, by)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// GetRunHandler handles GET /counting/runs?location=.
type GetRunHandler struct {
	svc *appsvcs.Services
}

func NewGetRunHandler(svc *appsvcs.Services) *GetRunHandler {
	return &GetRunHandler{svc: svc}
}

func (h *GetRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.Counting.Get(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// CommitCountRequest records a count for one line, entered in the display
// unit. An empty unit means the operator's preferred unit for the item.
type CommitCountRequest struct {
	Location string  `json:"location" validate:"required"`
	Index    int     `json:"index" validate:"min=0"`
	Qty      float64 `json:"qty"`
	Unit     string  `json:"unit"`
}

// CommitCountHandler handles PUT /counting/runs/lines.
type CommitCountHandler struct {
	svc *appsvcs.Services
}

func NewCommitCountHandler(svc *appsvcs.Services) *CommitCountHandler {
	return &CommitCountHandler{svc: svc}
}

func (h *CommitCountHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CommitCountRequest](w, r)
	if !ok {
		return
	}
	run, err := h.svc.Counting.CommitCount(r.Context(), req.Location, req.Index, req.Qty, req.Unit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// MoveCursorRequest moves the run cursor, either by a relative delta or to
// an absolute index.
type MoveCursorRequest struct {
	Location string `json:"location" validate:"required"`
	Delta    *int   `json:"delta,omitempty"`
	Index    *int   `json:"index,omitempty"`
}

// MoveCursorHandler handles POST /counting/runs/cursor.
type MoveCursorHandler struct {
	svc *appsvcs.Services
}

func NewMoveCursorHandler(svc *appsvcs.Services) *MoveCursorHandler {
	return &MoveCursorHandler{svc: svc}
}

func (h *MoveCursorHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[MoveCursorRequest](w, r)
	if !ok {
		return
	}
	if req.Delta == nil && req.Index == nil {
		httpx.JSONError(w, http.StatusBadRequest, "delta or index is required")
		return
	}
	var err error
	var run any
	if req.Index != nil {
		run, err = h.svc.Counting.JumpTo(r.Context(), req.Location, *req.Index)
	} else {
		run, err = h.svc.Counting.Advance(r.Context(), req.Location, *req.Delta)
	}
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// RunActionRequest addresses today's run at a location.
type RunActionRequest struct {
	Location string `json:"location" validate:"required"`
}

// CompleteRunHandler handles POST /counting/runs/complete.
type CompleteRunHandler struct {
	svc *appsvcs.Services
}

func NewCompleteRunHandler(svc *appsvcs.Services) *CompleteRunHandler {
	return &CompleteRunHandler{svc: svc}
}

func (h *CompleteRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RunActionRequest](w, r)
	if !ok {
		return
	}
	run, err := h.svc.Counting.Complete(r.Context(), req.Location)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// ResetRunHandler handles POST /counting/runs/reset.
type ResetRunHandler struct {
	svc *appsvcs.Services
}

func NewResetRunHandler(svc *appsvcs.Services) *ResetRunHandler {
	return &ResetRunHandler{svc: svc}
}

func (h *ResetRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RunActionRequest](w, r)
	if !ok {
		return
	}
	run, err := h.svc.Counting.Reset(r.Context(), req.Location)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}

// ExportRunHandler handles GET /counting/runs/export?location=, streaming
// the run as CSV.
type ExportRunHandler struct {
	svc *appsvcs.Services
}

func NewExportRunHandler(svc *appsvcs.Services) *ExportRunHandler {
	return &ExportRunHandler{svc: svc}
}

func (h *ExportRunHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filename, header, rows, err := h.svc.Counting.ExportCSV(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.CSV(w, filename, header, rows)
}
