package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/repository"
)

type stubEvents struct {
	events []models.Event
}

func (s *stubEvents) Create(_ context.Context, event models.Event) (models.Event, error) {
	return event, nil
}

func (s *stubEvents) GetByID(_ context.Context, _ string) (models.Event, error) {
	return models.Event{}, repository.ErrNotFound
}

func (s *stubEvents) SetStatus(_ context.Context, _ string, _ models.EventStatus) error {
	return nil
}

func (s *stubEvents) ListByOrg(_ context.Context, _ string) ([]models.Event, error) {
	return s.events, nil
}

func (s *stubEvents) ListAll(_ context.Context, _ string) ([]models.Event, error) {
	return s.events, nil
}

func (s *stubEvents) ListUpcoming(_ context.Context, _ time.Time) ([]models.Event, error) {
	return s.events, nil
}

type stubApplications struct {
	repository.ApplicationRepository
	count int
}

func (s *stubApplications) CountByOrg(_ context.Context, _ string) (int, error) {
	return s.count, nil
}

func dated(id string, t time.Time) models.Event {
	return models.Event{ID: id, Date: &t, Status: models.EventStatusActive}
}

func TestCountActive(t *testing.T) {
	events := []models.Event{
		{Status: models.EventStatusActive},
		{Status: models.EventStatusInactive},
		{Status: models.EventStatusActive},
	}
	assert.Equal(t, 2, CountActive(events))
	assert.Equal(t, 0, CountActive(nil))
}

func TestRecentEventsOrdersDescendingWithSentinel(t *testing.T) {
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	events := []models.Event{
		dated("jan", jan),
		{ID: "undated", Status: models.EventStatusActive},
		dated("dec", dec),
		dated("jun", jun),
	}

	got := RecentEvents(events, 10)
	ids := make([]string, 0, len(got))
	for _, event := range got {
		ids = append(ids, event.ID)
	}

	// Undated events take the sentinel minimum and rank last.
	assert.Equal(t, []string{"dec", "jun", "jan", "undated"}, ids)
}

func TestRecentEventsTruncates(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	var events []models.Event
	for i := 0; i < 8; i++ {
		events = append(events, dated(string(rune('a'+i)), base.AddDate(0, 0, i)))
	}

	got := RecentEvents(events, 5)
	require.Len(t, got, 5)
	assert.Equal(t, "h", got[0].ID)

	// The input slice is left untouched.
	assert.Equal(t, "a", events[0].ID)
}

func TestForOrg(t *testing.T) {
	jan := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(
		&stubEvents{events: []models.Event{
			dated("one", jan),
			{ID: "two", Status: models.EventStatusInactive},
		}},
		&stubApplications{count: 7},
	)

	summary, err := svc.ForOrg(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEvents)
	assert.Equal(t, 1, summary.ActiveEvents)
	assert.Equal(t, 7, summary.TotalApplications)
	require.Len(t, summary.RecentEvents, 2)
	assert.Equal(t, "one", summary.RecentEvents[0].ID)
}
