package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/lifecycle"
)

type ApplicationHandler struct {
	lifecycle *lifecycle.Service
	logger    zerolog.Logger
}

func NewApplicationHandler(lifecycleService *lifecycle.Service, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		lifecycle: lifecycleService,
		logger:    logger.With().Str("handler", "application").Logger(),
	}
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	eventID := strings.TrimSpace(mux.Vars(r)["eventID"])
	if eventID == "" {
		http.Error(w, "Event ID is required", http.StatusBadRequest)
		return
	}

	application, err := h.lifecycle.Apply(r.Context(), volunteerID, eventID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, application)
}

func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	applicationID := strings.TrimSpace(mux.Vars(r)["applicationID"])
	if applicationID == "" {
		http.Error(w, "Application ID is required", http.StatusBadRequest)
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	application, err := h.lifecycle.Decide(r.Context(), applicationID, orgID, lifecycle.Decision(req.Decision))
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, application)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	applications, err := h.lifecycle.ListForVolunteer(r.Context(), volunteerID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"applications": applications})
}

func (h *ApplicationHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	eventID := strings.TrimSpace(mux.Vars(r)["eventID"])
	if eventID == "" {
		http.Error(w, "Event ID is required", http.StatusBadRequest)
		return
	}

	applications, err := h.lifecycle.ListForEvent(r.Context(), eventID, orgID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"applications": applications})
}

func (h *ApplicationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	applications, err := h.lifecycle.ListPendingForOrg(r.Context(), orgID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"applications": applications})
}
