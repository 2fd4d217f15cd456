package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/authz"
	"github.com/vollink/vollink-api/internal/catalog"
	"github.com/vollink/vollink-api/internal/repository"
)

type VolunteerHandler struct {
	volunteers repository.VolunteerRepository
	logger     zerolog.Logger
}

func NewVolunteerHandler(volunteers repository.VolunteerRepository, logger zerolog.Logger) *VolunteerHandler {
	return &VolunteerHandler{
		volunteers: volunteers,
		logger:     logger.With().Str("handler", "volunteer").Logger(),
	}
}

type updateProfileRequest struct {
	Name         string   `json:"name" validate:"required"`
	Phone        string   `json:"phone"`
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	CustomSkills string   `json:"custom_skills"`
}

// UpdateProfile replaces the caller's profile fields. Skills must come from
// the controlled vocabulary; free-text skills go through custom_skills and
// are merged in.
func (h *VolunteerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid profile request: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, skill := range req.Skills {
		if !catalog.IsControlledSkill(skill) {
			http.Error(w, "Unknown skill: "+skill, http.StatusBadRequest)
			return
		}
	}

	skills := catalog.MergeSkills(req.Skills, req.CustomSkills)
	volunteer, err := h.volunteers.UpdateProfile(r.Context(), volunteerID, req.Name, req.Phone, req.Bio, skills)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, volunteer)
}

// Me returns the caller's own profile.
func (h *VolunteerHandler) Me(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := authz.ActorIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing actor context", http.StatusUnauthorized)
		return
	}

	volunteer, err := h.volunteers.GetByID(r.Context(), volunteerID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, volunteer)
}
