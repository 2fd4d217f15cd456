package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/notification"
	"github.com/vollink/vollink-api/internal/repository"
	"github.com/vollink/vollink-api/internal/temporal"
)

type fakeApplications struct {
	byID   map[string]models.Application
	nextID int
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{byID: make(map[string]models.Application)}
}

func (f *fakeApplications) Create(_ context.Context, application models.Application) (models.Application, error) {
	for _, existing := range f.byID {
		if existing.EventID == application.EventID && existing.VolunteerID == application.VolunteerID {
			return models.Application{}, repository.ErrDuplicateApplication
		}
	}
	f.nextID++
	application.ID = fmt.Sprintf("app-%d", f.nextID)
	application.Status = models.ApplicationStatusPending
	application.AppliedAt = time.Now()
	f.byID[application.ID] = application
	return application, nil
}

func (f *fakeApplications) GetByID(_ context.Context, applicationID string) (models.Application, error) {
	application, ok := f.byID[applicationID]
	if !ok {
		return models.Application{}, repository.ErrNotFound
	}
	return application, nil
}

func (f *fakeApplications) UpdateStatusIfPending(_ context.Context, applicationID string, status models.ApplicationStatus) (models.Application, error) {
	application, ok := f.byID[applicationID]
	if !ok {
		return models.Application{}, repository.ErrNotFound
	}
	if application.Status != models.ApplicationStatusPending {
		return models.Application{}, repository.ErrInvalidTransition
	}
	application.Status = status
	f.byID[applicationID] = application
	return application, nil
}

func (f *fakeApplications) ListByVolunteer(_ context.Context, volunteerID string) ([]models.Application, error) {
	var out []models.Application
	for _, application := range f.byID {
		if application.VolunteerID == volunteerID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByEvent(_ context.Context, eventID string) ([]models.Application, error) {
	var out []models.Application
	for _, application := range f.byID {
		if application.EventID == eventID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplications) ListPendingByOrg(_ context.Context, orgID string) ([]models.Application, error) {
	var out []models.Application
	for _, application := range f.byID {
		if application.OrgID == orgID && application.Status == models.ApplicationStatusPending {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplications) CountByOrg(_ context.Context, orgID string) (int, error) {
	count := 0
	for _, application := range f.byID {
		if application.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

type fakeEvents struct {
	byID map[string]models.Event
}

func (f *fakeEvents) Create(_ context.Context, event models.Event) (models.Event, error) {
	f.byID[event.ID] = event
	return event, nil
}

func (f *fakeEvents) GetByID(_ context.Context, eventID string) (models.Event, error) {
	event, ok := f.byID[eventID]
	if !ok {
		return models.Event{}, repository.ErrNotFound
	}
	return event, nil
}

func (f *fakeEvents) SetStatus(_ context.Context, _ string, _ models.EventStatus) error {
	return nil
}

func (f *fakeEvents) ListByOrg(_ context.Context, _ string) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) ListAll(_ context.Context, _ string) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEvents) ListUpcoming(_ context.Context, _ time.Time) ([]models.Event, error) {
	return nil, nil
}

type fakeVolunteers struct {
	byID map[string]models.Volunteer
}

func (f *fakeVolunteers) Create(_ context.Context, _, _, _, _ string) (models.Volunteer, error) {
	return models.Volunteer{}, errors.New("not implemented")
}

func (f *fakeVolunteers) Authenticate(_ context.Context, _, _ string) (models.Volunteer, error) {
	return models.Volunteer{}, errors.New("not implemented")
}

func (f *fakeVolunteers) GetByID(_ context.Context, volunteerID string) (models.Volunteer, error) {
	volunteer, ok := f.byID[volunteerID]
	if !ok {
		return models.Volunteer{}, repository.ErrNotFound
	}
	return volunteer, nil
}

func (f *fakeVolunteers) UpdateProfile(_ context.Context, _, _, _, _ string, _ []string) (models.Volunteer, error) {
	return models.Volunteer{}, errors.New("not implemented")
}

type fakeOrganizations struct {
	byID map[string]models.Organization
}

func (f *fakeOrganizations) Create(_ context.Context, _, _, _, _, _ string) (models.Organization, error) {
	return models.Organization{}, errors.New("not implemented")
}

func (f *fakeOrganizations) Authenticate(_ context.Context, _, _ string) (models.Organization, error) {
	return models.Organization{}, errors.New("not implemented")
}

func (f *fakeOrganizations) GetByID(_ context.Context, orgID string) (models.Organization, error) {
	org, ok := f.byID[orgID]
	if !ok {
		return models.Organization{}, repository.ErrNotFound
	}
	return org, nil
}

type fakeNotifications struct {
	published []notification.Event
	fail      bool
}

func (f *fakeNotifications) Publish(_ context.Context, evt notification.Event) (models.Notification, error) {
	if f.fail {
		return models.Notification{}, errors.New("notification store down")
	}
	f.published = append(f.published, evt)
	return models.Notification{ID: "notif-1", RecipientID: evt.RecipientID}, nil
}

func (f *fakeNotifications) NotifyNewApplication(ctx context.Context, orgID, volunteerName, eventTitle, eventID string) error {
	_, err := f.Publish(ctx, notification.Event{
		RecipientID: orgID,
		Type:        models.NotificationTypeNewApplication,
		Message:     fmt.Sprintf("%s has applied for %s", volunteerName, eventTitle),
		EventID:     eventID,
	})
	return err
}

func (f *fakeNotifications) NotifyApplicationAccepted(ctx context.Context, volunteerID, eventTitle, eventID string) error {
	_, err := f.Publish(ctx, notification.Event{
		RecipientID: volunteerID,
		Type:        models.NotificationTypeApplicationAccepted,
		EventID:     eventID,
	})
	return err
}

func (f *fakeNotifications) NotifyApplicationRejected(ctx context.Context, volunteerID, eventTitle, eventID string) error {
	_, err := f.Publish(ctx, notification.Event{
		RecipientID: volunteerID,
		Type:        models.NotificationTypeApplicationRejected,
		EventID:     eventID,
	})
	return err
}

func (f *fakeNotifications) ListRecent(_ context.Context, _ string, _ int) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, _, _ string) (models.Notification, error) {
	return models.Notification{}, nil
}

type fakeDispatcher struct {
	dispatched []temporal.EmailParams
	fail       bool
}

func (f *fakeDispatcher) Dispatch(_ context.Context, params temporal.EmailParams) error {
	if f.fail {
		return errors.New("temporal unavailable")
	}
	f.dispatched = append(f.dispatched, params)
	return nil
}

type fixture struct {
	service       *Service
	applications  *fakeApplications
	events        *fakeEvents
	volunteers    *fakeVolunteers
	organizations *fakeOrganizations
	notifications *fakeNotifications
	dispatcher    *fakeDispatcher
}

func newFixture() *fixture {
	eventDate := time.Date(2030, time.May, 20, 9, 0, 0, 0, time.UTC)

	f := &fixture{
		applications: newFakeApplications(),
		events: &fakeEvents{byID: map[string]models.Event{
			"event-1": {
				ID:       "event-1",
				OrgID:    "org-1",
				Title:    "Beach Cleanup",
				Date:     &eventDate,
				Location: "Shore",
				Status:   models.EventStatusActive,
			},
		}},
		volunteers: &fakeVolunteers{byID: map[string]models.Volunteer{
			"vol-1": {ID: "vol-1", Name: "Ada", Email: "ada@example.com"},
		}},
		organizations: &fakeOrganizations{byID: map[string]models.Organization{
			"org-1": {ID: "org-1", Name: "Shore Keepers", Email: "org@example.com"},
		}},
		notifications: &fakeNotifications{},
		dispatcher:    &fakeDispatcher{},
	}

	f.service = NewService(
		f.applications,
		f.events,
		f.volunteers,
		f.organizations,
		f.notifications,
		f.dispatcher,
		zerolog.Nop(),
	)
	return f
}

func TestApplySnapshotsAndNotifies(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, "Ada", application.VolunteerName)
	assert.Equal(t, "ada@example.com", application.VolunteerEmail)
	assert.Equal(t, "Beach Cleanup", application.EventTitle)
	assert.Equal(t, "Shore Keepers", application.OrganizationName)
	assert.Equal(t, "org-1", application.OrgID)

	require.Len(t, f.notifications.published, 1)
	assert.Equal(t, "org-1", f.notifications.published[0].RecipientID)
	assert.Equal(t, models.NotificationTypeNewApplication, f.notifications.published[0].Type)

	require.Len(t, f.dispatcher.dispatched, 2)
	assert.Equal(t, temporal.EmailRegistrationConfirmation, f.dispatcher.dispatched[0].Kind)
	assert.Equal(t, "ada@example.com", f.dispatcher.dispatched[0].To)
	assert.Equal(t, temporal.EmailNewApplicationAlert, f.dispatcher.dispatched[1].Kind)
	assert.Equal(t, "org@example.com", f.dispatcher.dispatched[1].To)
}

func TestApplyWithMissingOrgFallsBack(t *testing.T) {
	f := newFixture()
	delete(f.organizations.byID, "org-1")

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Organization", application.OrganizationName)

	// No org email on file, so only the volunteer confirmation goes out.
	require.Len(t, f.dispatcher.dispatched, 1)
	assert.Equal(t, temporal.EmailRegistrationConfirmation, f.dispatcher.dispatched[0].Kind)
}

func TestApplyRejectsDuplicates(t *testing.T) {
	f := newFixture()

	_, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	_, err = f.service.Apply(context.Background(), "vol-1", "event-1")
	assert.ErrorIs(t, err, repository.ErrDuplicateApplication)
}

func TestApplyUnknownEvent(t *testing.T) {
	f := newFixture()

	_, err := f.service.Apply(context.Background(), "vol-1", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApplySurvivesNotificationFailure(t *testing.T) {
	f := newFixture()
	f.notifications.fail = true
	f.dispatcher.fail = true

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
}

func TestDecideAccept(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)
	f.notifications.published = nil
	f.dispatcher.dispatched = nil

	updated, err := f.service.Decide(context.Background(), application.ID, "org-1", DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	require.Len(t, f.notifications.published, 1)
	assert.Equal(t, "vol-1", f.notifications.published[0].RecipientID)
	assert.Equal(t, models.NotificationTypeApplicationAccepted, f.notifications.published[0].Type)

	require.Len(t, f.dispatcher.dispatched, 1)
	assert.Equal(t, temporal.EmailApplicationAccepted, f.dispatcher.dispatched[0].Kind)
	assert.Equal(t, "ada@example.com", f.dispatcher.dispatched[0].To)
}

func TestDecideReject(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	updated, err := f.service.Decide(context.Background(), application.ID, "org-1", DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
}

func TestDecideRequiresOwnership(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), application.ID, "org-2", DecisionAccept)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	stored, err := f.applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, stored.Status)
}

func TestDecideIsOneShot(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), application.ID, "org-1", DecisionAccept)
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), application.ID, "org-1", DecisionReject)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	stored, err := f.applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	f := newFixture()

	_, err := f.service.Decide(context.Background(), "app-1", "org-1", Decision("maybe"))
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestDecideSurvivesEmailFailure(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	f.dispatcher.fail = true
	updated, err := f.service.Decide(context.Background(), application.ID, "org-1", DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)
}

func TestListForVolunteerDerivesStatusAndSkipsMissingEvents(t *testing.T) {
	f := newFixture()

	pastDate := time.Date(2020, time.January, 5, 9, 0, 0, 0, time.UTC)
	f.events.byID["event-past"] = models.Event{
		ID:    "event-past",
		OrgID: "org-1",
		Title: "Old Drive",
		Date:  &pastDate,
	}

	future, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)
	past, err := f.service.Apply(context.Background(), "vol-1", "event-past")
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), future.ID, "org-1", DecisionAccept)
	require.NoError(t, err)
	_, err = f.service.Decide(context.Background(), past.ID, "org-1", DecisionAccept)
	require.NoError(t, err)

	// Orphan a third application by removing its event afterwards.
	f.events.byID["event-gone"] = models.Event{ID: "event-gone", OrgID: "org-1", Title: "Ghost"}
	_, err = f.service.Apply(context.Background(), "vol-1", "event-gone")
	require.NoError(t, err)
	delete(f.events.byID, "event-gone")

	views, err := f.service.ListForVolunteer(context.Background(), "vol-1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	statuses := map[string]string{}
	for _, view := range views {
		statuses[view.EventID] = view.DerivedStatus
	}
	assert.Equal(t, "Approved", statuses["event-1"])
	assert.Equal(t, "Completed", statuses["event-past"])
}

func TestListForEventRequiresOwnership(t *testing.T) {
	f := newFixture()

	_, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	_, err = f.service.ListForEvent(context.Background(), "event-1", "org-2")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	applications, err := f.service.ListForEvent(context.Background(), "event-1", "org-1")
	require.NoError(t, err)
	assert.Len(t, applications, 1)
}

func TestListPendingForOrg(t *testing.T) {
	f := newFixture()

	application, err := f.service.Apply(context.Background(), "vol-1", "event-1")
	require.NoError(t, err)

	pending, err := f.service.ListPendingForOrg(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = f.service.Decide(context.Background(), application.ID, "org-1", DecisionReject)
	require.NoError(t, err)

	pending, err = f.service.ListPendingForOrg(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
