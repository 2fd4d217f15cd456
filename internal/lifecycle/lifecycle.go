// Package lifecycle implements the application state machine: a volunteer's
// application starts pending and moves exactly once to accepted or rejected,
// with notifications and emails fanned out after each transition.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/notification"
	"github.com/vollink/vollink-api/internal/repository"
	"github.com/vollink/vollink-api/internal/temporal"
)

// ErrNotAuthorized is returned when the acting organization does not own the
// application it is deciding on.
var ErrNotAuthorized = errors.New("organization does not own this application")

// ErrInvalidDecision is returned for decisions other than accept or reject.
var ErrInvalidDecision = errors.New("decision must be accept or reject")

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// EmailDispatcher hands an email off for asynchronous delivery. A dispatch
// failure is reported to the caller but never unwinds the state change that
// triggered it.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, params temporal.EmailParams) error
}

type Service struct {
	applications  repository.ApplicationRepository
	events        repository.EventRepository
	volunteers    repository.VolunteerRepository
	organizations repository.OrganizationRepository
	notifications notification.Service
	emails        EmailDispatcher
	logger        zerolog.Logger
	now           func() time.Time
}

func NewService(
	applications repository.ApplicationRepository,
	events repository.EventRepository,
	volunteers repository.VolunteerRepository,
	organizations repository.OrganizationRepository,
	notifications notification.Service,
	emails EmailDispatcher,
	logger zerolog.Logger,
) *Service {
	return &Service{
		applications:  applications,
		events:        events,
		volunteers:    volunteers,
		organizations: organizations,
		notifications: notifications,
		emails:        emails,
		logger:        logger.With().Str("component", "lifecycle").Logger(),
		now:           time.Now,
	}
}

// Apply creates a pending application for the volunteer on the event. The
// volunteer's name/email and the event/organization titles are snapshotted
// into the application and do not track later edits. A second apply for the
// same (event, volunteer) pair fails with ErrDuplicateApplication, enforced
// by the store's unique constraint so concurrent double-submissions cannot
// slip through.
//
// The application row is the only durable outcome. The organization's
// notification and both emails are best-effort: failures are logged and the
// application stands.
func (s *Service) Apply(ctx context.Context, volunteerID, eventID string) (models.Application, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return models.Application{}, err
	}

	volunteer, err := s.volunteers.GetByID(ctx, volunteerID)
	if err != nil {
		return models.Application{}, err
	}

	orgName := "Unknown Organization"
	orgEmail := ""
	org, err := s.organizations.GetByID(ctx, event.OrgID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return models.Application{}, err
		}
		s.logger.Warn().Str("org_id", event.OrgID).Msg("event owner missing; applying anyway")
	} else {
		orgName = org.Name
		orgEmail = org.Email
	}

	application, err := s.applications.Create(ctx, models.Application{
		EventID:          event.ID,
		VolunteerID:      volunteer.ID,
		OrgID:            event.OrgID,
		VolunteerName:    volunteer.Name,
		VolunteerEmail:   volunteer.Email,
		EventTitle:       event.Title,
		OrganizationName: orgName,
	})
	if err != nil {
		return models.Application{}, err
	}

	if err := s.notifications.NotifyNewApplication(ctx, event.OrgID, volunteer.Name, event.Title, event.ID); err != nil {
		s.logger.Warn().Err(err).Str("application_id", application.ID).Msg("failed to notify organization of new application")
	}

	s.dispatchEmail(ctx, application.ID, temporal.EmailParams{
		Kind:          temporal.EmailRegistrationConfirmation,
		To:            volunteer.Email,
		VolunteerName: volunteer.Name,
		EventTitle:    event.Title,
		EventDate:     models.FormatDate(event.Date),
		EventLocation: event.Location,
		OrgName:       orgName,
	})
	if orgEmail != "" {
		s.dispatchEmail(ctx, application.ID, temporal.EmailParams{
			Kind:          temporal.EmailNewApplicationAlert,
			To:            orgEmail,
			VolunteerName: volunteer.Name,
			EventTitle:    event.Title,
		})
	}

	return application, nil
}

// Decide moves a pending application to accepted or rejected. The transition
// is one-shot: a conditional update matches only pending rows, so deciding a
// terminal application fails with ErrInvalidTransition and leaves the status
// untouched. The status write commits before any notification or email goes
// out, and their failure never reverts it.
func (s *Service) Decide(ctx context.Context, applicationID, orgID string, decision Decision) (models.Application, error) {
	var status models.ApplicationStatus
	switch decision {
	case DecisionAccept:
		status = models.ApplicationStatusAccepted
	case DecisionReject:
		status = models.ApplicationStatusRejected
	default:
		return models.Application{}, ErrInvalidDecision
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return models.Application{}, err
	}
	if application.OrgID != orgID {
		return models.Application{}, ErrNotAuthorized
	}

	updated, err := s.applications.UpdateStatusIfPending(ctx, applicationID, status)
	if err != nil {
		return models.Application{}, err
	}

	var notifyErr error
	var emailKind temporal.EmailKind
	if status == models.ApplicationStatusAccepted {
		notifyErr = s.notifications.NotifyApplicationAccepted(ctx, updated.VolunteerID, updated.EventTitle, updated.EventID)
		emailKind = temporal.EmailApplicationAccepted
	} else {
		notifyErr = s.notifications.NotifyApplicationRejected(ctx, updated.VolunteerID, updated.EventTitle, updated.EventID)
		emailKind = temporal.EmailApplicationRejected
	}
	if notifyErr != nil {
		s.logger.Warn().Err(notifyErr).Str("application_id", applicationID).Msg("failed to notify volunteer of decision")
	}

	s.dispatchEmail(ctx, applicationID, temporal.EmailParams{
		Kind:          emailKind,
		To:            updated.VolunteerEmail,
		VolunteerName: updated.VolunteerName,
		EventTitle:    updated.EventTitle,
		OrgName:       updated.OrganizationName,
	})

	return updated, nil
}

// ListForVolunteer joins each of the volunteer's applications with its event
// to compute the derived display status. Applications whose event no longer
// exists are skipped.
func (s *Service) ListForVolunteer(ctx context.Context, volunteerID string) ([]models.ApplicationView, error) {
	applications, err := s.applications.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]models.ApplicationView, 0, len(applications))
	for _, application := range applications {
		event, err := s.events.GetByID(ctx, application.EventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn().Str("application_id", application.ID).Str("event_id", application.EventID).Msg("skipping application for missing event")
				continue
			}
			return nil, err
		}
		views = append(views, models.ApplicationView{
			Application:   application,
			EventDate:     event.Date,
			EventLocation: event.Location,
			DerivedStatus: models.DerivedStatus(application.Status, event.Date, now),
		})
	}
	return views, nil
}

// ListForEvent returns an event's applications to its owning organization.
func (s *Service) ListForEvent(ctx context.Context, eventID, orgID string) ([]models.Application, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrgID != orgID {
		return nil, ErrNotAuthorized
	}
	return s.applications.ListByEvent(ctx, eventID)
}

// ListPendingForOrg returns the organization's pending applications across
// all of its events.
func (s *Service) ListPendingForOrg(ctx context.Context, orgID string) ([]models.Application, error) {
	return s.applications.ListPendingByOrg(ctx, orgID)
}

func (s *Service) dispatchEmail(ctx context.Context, applicationID string, params temporal.EmailParams) {
	if err := s.emails.Dispatch(ctx, params); err != nil {
		s.logger.Warn().Err(err).
			Str("application_id", applicationID).
			Str("kind", string(params.Kind)).
			Msg("failed to dispatch email")
	}
}
