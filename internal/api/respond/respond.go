// Package respond writes JSON responses and is the single point where
// internal failure kinds become wire-level status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nvalente/bloglist-be/internal/apperr"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("Failed to encode response body")
		}
	}
}

// errorBody is the only shape error responses take: a single "error" key.
type errorBody struct {
	Error string `json:"error"`
}

// Error maps a failure to its status code and uniform error body. Failures
// outside the taxonomy become a generic 500 with no internal detail.
func Error(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		JSON(w, statusOf(ae.Kind), errorBody{Error: ae.Message})
		return
	}

	log.Error().Err(err).Msg("Unhandled internal error")
	JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// statusOf is the exhaustive taxonomy table; first match wins by kind.
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindMalformedID, apperr.KindDuplicate:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound, apperr.KindUnknownRoute:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
