package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

// RespondJSON writes v as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ErrorStatus maps a store error kind to its HTTP status. Unrecognized
// errors are internal.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, facility.ErrNotFound), errors.Is(err, facility.ErrNoHistory):
		return http.StatusNotFound
	case errors.Is(err, facility.ErrDuplicateIdentity), errors.Is(err, facility.ErrReferentialConflict):
		return http.StatusConflict
	case errors.Is(err, facility.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, facility.ErrInvalidRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError surfaces a store error with its mapped status.
func RespondError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), ErrorStatus(err))
}
