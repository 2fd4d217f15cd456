package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/catalog"
	"github.com/vollink/vollink-api/internal/models"
)

type EventHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

func NewEventHandler(catalogService *catalog.Service, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		catalog: catalogService,
		logger:  logger.With().Str("handler", "event").Logger(),
	}
}

type createEventRequest struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	Date               string   `json:"date"`
	Location           string   `json:"location"`
	RequiredVolunteers int      `json:"required_volunteers" validate:"required,min=1"`
	SkillsRequired     []string `json:"skills_required"`
	CustomSkills       string   `json:"custom_skills"`
}

type setEventStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid event request: "+err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		http.Error(w, "Invalid date; use RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	event, err := h.catalog.CreateEvent(r.Context(), orgID, catalog.CreateEventParams{
		Title:              req.Title,
		Description:        req.Description,
		Date:               date,
		Location:           req.Location,
		RequiredVolunteers: req.RequiredVolunteers,
		SkillsRequired:     req.SkillsRequired,
		CustomSkills:       req.CustomSkills,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
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

	var req setEventStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalog.SetStatus(r.Context(), eventID, orgID, models.EventStatus(req.Status)); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	event, err := h.catalog.GetEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// List serves the volunteer-facing feed. ?upcoming=true keeps only events
// dated today or later (undated events always show); ?q= filters by title or
// location substring.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		events []models.Event
		err    error
	)
	if strings.EqualFold(r.URL.Query().Get("upcoming"), "true") {
		events, err = h.catalog.ListUpcoming(r.Context())
	} else {
		events, err = h.catalog.ListAll(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	}
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orgID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	events, err := h.catalog.ListForOrg(r.Context(), orgID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(mux.Vars(r)["eventID"])
	if eventID == "" {
		http.Error(w, "Event ID is required", http.StatusBadRequest)
		return
	}

	event, err := h.catalog.GetEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func parseEventDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
