package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/catalog"
	"github.com/vollink/vollink-api/internal/lifecycle"
	"github.com/vollink/vollink-api/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps service and repository errors onto HTTP statuses.
// Anything unrecognized is a 500 and gets logged; the client sees a generic
// message.
func respondServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput) || errors.Is(err, lifecycle.ErrInvalidDecision):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotAuthorized) || errors.Is(err, lifecycle.ErrNotAuthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Resource not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateApplication) || errors.Is(err, repository.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.Error().Err(err).Msg("request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
