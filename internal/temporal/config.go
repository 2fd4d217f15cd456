package temporal

import "time"

// TaskQueueName is the Temporal task queue used for outbound email delivery.
const TaskQueueName = "VOLLINK_EMAIL"

// EmailWorkflowIDPrefix is the prefix used for email delivery workflow IDs.
const EmailWorkflowIDPrefix = "vollink-email-"

// DefaultActivityTimeout bounds a single email send attempt.
const DefaultActivityTimeout = 2 * time.Minute

// EmailKind selects which template the delivery activity renders.
type EmailKind string

const (
	EmailRegistrationConfirmation EmailKind = "registration_confirmation"
	EmailNewApplicationAlert      EmailKind = "new_application_alert"
	EmailApplicationAccepted      EmailKind = "application_accepted"
	EmailApplicationRejected      EmailKind = "application_rejected"
)

// EmailParams is the input to the email delivery workflow. It carries the
// snapshot taken when the triggering transition happened, so later edits to
// volunteers or events do not change what gets sent.
type EmailParams struct {
	Kind          EmailKind
	To            string
	VolunteerName string
	EventTitle    string
	EventDate     string
	EventLocation string
	OrgName       string
}
