package models

import "time"

type EventStatus string

const (
	EventStatusActive   EventStatus = "active"
	EventStatusInactive EventStatus = "inactive"
)

// IsValidEventStatus reports whether s is one of the two known statuses.
func IsValidEventStatus(s EventStatus) bool {
	return s == EventStatusActive || s == EventStatusInactive
}

// Event is a volunteering opportunity posted by an organization. Only the
// owning organization may edit it or toggle its status.
type Event struct {
	ID                 string      `json:"id" db:"id"`
	OrgID              string      `json:"org_id" db:"org_id"`
	Title              string      `json:"title" db:"title"`
	Description        string      `json:"description" db:"description"`
	Date               *time.Time  `json:"date" db:"date"`
	Location           string      `json:"location" db:"location"`
	RequiredVolunteers int         `json:"required_volunteers" db:"required_volunteers"`
	SkillsRequired     []string    `json:"skills_required" db:"skills_required"`
	Status             EventStatus `json:"status" db:"status"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
}

// DateOrMin returns the event date for sorting, substituting the sentinel
// minimum when no date is set.
func (e Event) DateOrMin() time.Time {
	if e.Date == nil {
		return MinEventDate
	}
	return StripZone(*e.Date)
}
