// Package httpx holds the helpers shared by all HTTP handlers: JSON
// responses, the error-to-status mapping, pagination and the
// authenticated-account request context.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/avolkov/tinycrm/internal/apperr"
)

// PageSize is the fixed page size for all list endpoints.
const PageSize = 20

// Page is the envelope returned by paginated list endpoints.
type Page struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

// PageOffset translates the 1-based "page" query parameter into a row
// offset.
func PageOffset(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return (page - 1) * PageSize
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error translates a service error into the structured error response.
// Nothing escapes as an unhandled fault: unknown errors become a
// generic 500 and are logged server-side only.
func Error(w http.ResponseWriter, err error) {
	var fields apperr.FieldErrors

	switch {
	case errors.As(err, &fields):
		JSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Kind:    "validation_error",
			Message: "invalid input",
			Fields:  fields,
		}})
	case errors.Is(err, apperr.ErrValidation):
		JSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Kind:    "validation_error",
			Message: err.Error(),
		}})
	case errors.Is(err, apperr.ErrUnauthenticated):
		JSON(w, http.StatusUnauthorized, errorBody{Error: errorDetail{
			Kind:    "authentication_failed",
			Message: "authentication failed",
		}})
	case errors.Is(err, apperr.ErrPermissionDenied):
		JSON(w, http.StatusForbidden, errorBody{Error: errorDetail{
			Kind:    "permission_denied",
			Message: "permission denied",
		}})
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: errorDetail{
			Kind:    "not_found",
			Message: "not found",
		}})
	case errors.Is(err, apperr.ErrUnavailable):
		JSON(w, http.StatusServiceUnavailable, errorBody{Error: errorDetail{
			Kind:    "upstream_unavailable",
			Message: "upstream service unavailable",
		}})
	default:
		slog.Error("unhandled error", "error", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{
			Kind:    "internal",
			Message: "internal error",
		}})
	}
}
