package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/dashboard"
)

type DashboardHandler struct {
	service *dashboard.Service
	logger  zerolog.Logger
}

func NewDashboardHandler(service *dashboard.Service, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.ForOrg(r.Context(), orgID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
