package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialbid/internal/domain"
)

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain sentinel errors onto HTTP status codes and emits a
// JSON error body. Unknown errors become 500 with a generic message so repo
// internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateIdentity):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidBid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}
