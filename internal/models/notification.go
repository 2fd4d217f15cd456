package models

import "time"

type NotificationType string

const (
	NotificationTypeNewApplication      NotificationType = "new_application"
	NotificationTypeApplicationAccepted NotificationType = "application_accepted"
	NotificationTypeApplicationRejected NotificationType = "application_rejected"
)

// Notification is an in-app message for a volunteer or an organization,
// written as a side effect of an application transition. Read flips false to
// true once and never back.
type Notification struct {
	ID          string           `json:"id" db:"id"`
	RecipientID string           `json:"recipient_id" db:"recipient_id"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type"`
	EventID     string           `json:"event_id" db:"event_id"`
	Read        bool             `json:"read" db:"read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
