package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogdomain "github.com/ghuser/parstock/services/catalog/domain"
	countingdomain "github.com/ghuser/parstock/services/counting/domain"
	planningdomain "github.com/ghuser/parstock/services/planning/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", catalogdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrLocationNotFound", catalogdomain.ErrLocationNotFound, http.StatusNotFound},
		{"ErrRunNotFound", countingdomain.ErrRunNotFound, http.StatusNotFound},
		{"ErrEntryNotFound", countingdomain.ErrEntryNotFound, http.StatusNotFound},
		{"ErrBOMNotFound", planningdomain.ErrBOMNotFound, http.StatusNotFound},
		{"ErrDuplicateItem", catalogdomain.ErrDuplicateItem, http.StatusConflict},
		{"ErrInvalidItemName", catalogdomain.ErrInvalidItemName, http.StatusUnprocessableEntity},
		{"ErrUnknownUnit", catalogdomain.ErrUnknownUnit, http.StatusUnprocessableEntity},
		{"ErrNegativeQuantity", countingdomain.ErrNegativeQuantity, http.StatusUnprocessableEntity},
		{"ErrNoQuantityColumn", planningdomain.ErrNoQuantityColumn, http.StatusUnprocessableEntity},
		{"ErrEmptyImport", planningdomain.ErrEmptyImport, http.StatusUnprocessableEntity},
		{"wrapped ErrItemNotFound", fmt.Errorf("resolve catalog: %w", catalogdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrNegativeQuantity", fmt.Errorf("%w: got -3", countingdomain.ErrNegativeQuantity), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, countingdomain.ErrRunNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, catalogdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
