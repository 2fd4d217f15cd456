package models

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a volunteer's request to participate in an event. The
// volunteer and event fields are snapshotted at apply time and do not track
// later edits to the source records.
type Application struct {
	ID               string            `json:"id" db:"id"`
	EventID          string            `json:"event_id" db:"event_id"`
	VolunteerID      string            `json:"volunteer_id" db:"volunteer_id"`
	OrgID            string            `json:"org_id" db:"org_id"`
	VolunteerName    string            `json:"volunteer_name" db:"volunteer_name"`
	VolunteerEmail   string            `json:"volunteer_email" db:"volunteer_email"`
	EventTitle       string            `json:"event_title" db:"event_title"`
	OrganizationName string            `json:"organization_name" db:"organization_name"`
	Status           ApplicationStatus `json:"status" db:"status"`
	AppliedAt        time.Time         `json:"applied_at" db:"applied_at"`
}

// ApplicationView is an Application joined with its event for display:
// derived status, formatted dates, and the event's current location.
type ApplicationView struct {
	Application
	EventDate     *time.Time `json:"event_date"`
	EventLocation string     `json:"event_location"`
	DerivedStatus string     `json:"derived_status"`
}

// DerivedStatus computes the volunteer-facing display status from the stored
// status and the event date relative to now. It is pure and never persisted:
// rejected applications stay Rejected regardless of date, accepted ones read
// Completed once the event date has passed and Approved before it, and
// anything else renders as the stored status, title-cased.
func DerivedStatus(status ApplicationStatus, eventDate *time.Time, now time.Time) string {
	switch status {
	case ApplicationStatusRejected:
		return "Rejected"
	case ApplicationStatusAccepted:
		if eventDate != nil && StripZone(*eventDate).Before(StripZone(now)) {
			return "Completed"
		}
		return "Approved"
	default:
		return titleCase(string(status))
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
