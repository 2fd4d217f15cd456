package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerivedStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		status    ApplicationStatus
		eventDate *time.Time
		want      string
	}{
		{"rejected ignores past date", ApplicationStatusRejected, &past, "Rejected"},
		{"rejected ignores future date", ApplicationStatusRejected, &future, "Rejected"},
		{"accepted with past date completes", ApplicationStatusAccepted, &past, "Completed"},
		{"accepted with future date approved", ApplicationStatusAccepted, &future, "Approved"},
		{"accepted without date approved", ApplicationStatusAccepted, nil, "Approved"},
		{"pending title-cased", ApplicationStatusPending, &future, "Pending"},
		{"pending without date", ApplicationStatusPending, nil, "Pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivedStatus(tt.status, tt.eventDate, now))
		})
	}
}

func TestDerivedStatusStripsZonesBeforeComparing(t *testing.T) {
	// Same instant expressed in a +10 zone reads as a later wall clock; the
	// comparison must use the wall clock, not the instant.
	loc := time.FixedZone("plus10", 10*60*60)
	now := time.Date(2025, time.June, 15, 23, 0, 0, 0, time.UTC)
	eventDate := time.Date(2025, time.June, 16, 8, 0, 0, 0, loc)

	assert.Equal(t, "Approved", DerivedStatus(ApplicationStatusAccepted, &eventDate, now))
}
