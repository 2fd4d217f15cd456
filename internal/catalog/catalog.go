// Package catalog manages the event side of the platform: creation,
// active/inactive status, and the listings volunteers and organizations
// browse.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/repository"
)

// ErrInvalidInput wraps validation failures so handlers can map them to 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotAuthorized is returned when the acting organization does not own the
// event it is trying to change.
var ErrNotAuthorized = errors.New("organization does not own this event")

type Service struct {
	events repository.EventRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(events repository.EventRepository, logger zerolog.Logger) *Service {
	return &Service{
		events: events,
		logger: logger.With().Str("component", "catalog").Logger(),
		now:    time.Now,
	}
}

// CreateEventParams carries the event form fields. SkillsRequired must come
// from the controlled vocabulary; CustomSkills is free text, comma-separated.
type CreateEventParams struct {
	Title              string
	Description        string
	Date               *time.Time
	Location           string
	RequiredVolunteers int
	SkillsRequired     []string
	CustomSkills       string
}

func (s *Service) CreateEvent(ctx context.Context, orgID string, params CreateEventParams) (models.Event, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return models.Event{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if params.RequiredVolunteers < 1 {
		return models.Event{}, fmt.Errorf("%w: required_volunteers must be at least 1", ErrInvalidInput)
	}
	for _, skill := range params.SkillsRequired {
		if !IsControlledSkill(skill) {
			return models.Event{}, fmt.Errorf("%w: unknown skill %q; use custom skills for free text", ErrInvalidInput, skill)
		}
	}

	var date *time.Time
	if params.Date != nil {
		d := models.StripZone(*params.Date)
		date = &d
	}

	event := models.Event{
		OrgID:              orgID,
		Title:              title,
		Description:        strings.TrimSpace(params.Description),
		Date:               date,
		Location:           strings.TrimSpace(params.Location),
		RequiredVolunteers: params.RequiredVolunteers,
		SkillsRequired:     MergeSkills(params.SkillsRequired, params.CustomSkills),
		Status:             models.EventStatusActive,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return models.Event{}, err
	}
	s.logger.Info().Str("event_id", created.ID).Str("org_id", orgID).Msg("event created")
	return created, nil
}

// SetStatus toggles an event between active and inactive. Only the owning
// organization may do so; setting the current status again is a no-op.
func (s *Service) SetStatus(ctx context.Context, eventID, orgID string, status models.EventStatus) error {
	if !models.IsValidEventStatus(status) {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrgID != orgID {
		return ErrNotAuthorized
	}

	if err := s.events.SetStatus(ctx, eventID, status); err != nil {
		return err
	}
	s.logger.Info().Str("event_id", eventID).Str("status", string(status)).Msg("event status updated")
	return nil
}

func (s *Service) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	return s.events.GetByID(ctx, eventID)
}

func (s *Service) ListForOrg(ctx context.Context, orgID string) ([]models.Event, error) {
	return s.events.ListByOrg(ctx, orgID)
}

func (s *Service) ListAll(ctx context.Context, search string) ([]models.Event, error) {
	return s.events.ListAll(ctx, search)
}

func (s *Service) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	return s.events.ListUpcoming(ctx, s.now())
}
