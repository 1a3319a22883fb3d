// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/parstock/pkg/httpx"
	catalogdomain "github.com/ghuser/parstock/services/catalog/domain"
	countingdomain "github.com/ghuser/parstock/services/counting/domain"
	planningdomain "github.com/ghuser/parstock/services/planning/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrItemNotFound),
		errors.Is(err, catalogdomain.ErrLocationNotFound),
		errors.Is(err, countingdomain.ErrRunNotFound),
		errors.Is(err, countingdomain.ErrEntryNotFound),
		errors.Is(err, planningdomain.ErrBOMNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrDuplicateItem):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrInvalidItemName),
		errors.Is(err, catalogdomain.ErrUnknownUnit),
		errors.Is(err, countingdomain.ErrNegativeQuantity),
		errors.Is(err, planningdomain.ErrNoQuantityColumn),
		errors.Is(err, planningdomain.ErrEmptyImport):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
