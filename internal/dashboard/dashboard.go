// Package dashboard computes the read-only aggregates shown on the
// organization dashboard. It never mutates anything; application counts come
// from the applications table, the single source of truth.
package dashboard

import (
	"context"
	"sort"

	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/repository"
)

const recentEventCount = 5

// Summary is one organization's dashboard snapshot.
type Summary struct {
	TotalEvents       int            `json:"total_events"`
	ActiveEvents      int            `json:"active_events"`
	TotalApplications int            `json:"total_applications"`
	RecentEvents      []models.Event `json:"recent_events"`
}

type Service struct {
	events       repository.EventRepository
	applications repository.ApplicationRepository
}

func NewService(events repository.EventRepository, applications repository.ApplicationRepository) *Service {
	return &Service{events: events, applications: applications}
}

func (s *Service) ForOrg(ctx context.Context, orgID string) (Summary, error) {
	events, err := s.events.ListByOrg(ctx, orgID)
	if err != nil {
		return Summary{}, err
	}

	totalApplications, err := s.applications.CountByOrg(ctx, orgID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalEvents:       len(events),
		ActiveEvents:      CountActive(events),
		TotalApplications: totalApplications,
		RecentEvents:      RecentEvents(events, recentEventCount),
	}, nil
}

// CountActive counts events currently marked active.
func CountActive(events []models.Event) int {
	count := 0
	for _, event := range events {
		if event.Status == models.EventStatusActive {
			count++
		}
	}
	return count
}

// RecentEvents returns up to n events sorted by descending date. Events
// without a date take the sentinel minimum and rank last.
func RecentEvents(events []models.Event, n int) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateOrMin().After(sorted[j].DateOrMin())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
