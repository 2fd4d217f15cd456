package activities

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/activity"

	"github.com/vollink/vollink-api/internal/notification"
	"github.com/vollink/vollink-api/internal/temporal"
)

type Activities struct {
	Mailer notification.Mailer
}

// SendEmailActivity renders and sends one email. Errors bubble up so the
// workflow retry policy can reschedule the attempt.
func (a *Activities) SendEmailActivity(ctx context.Context, params temporal.EmailParams) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Sending email", "kind", params.Kind, "to", params.To)

	var err error
	switch params.Kind {
	case temporal.EmailRegistrationConfirmation:
		err = a.Mailer.SendRegistrationConfirmation(params.To, params.VolunteerName, params.EventTitle, params.EventDate, params.EventLocation, params.OrgName)
	case temporal.EmailNewApplicationAlert:
		err = a.Mailer.SendNewApplicationAlert(params.To, params.VolunteerName, params.EventTitle)
	case temporal.EmailApplicationAccepted:
		err = a.Mailer.SendAcceptance(params.To, params.VolunteerName, params.EventTitle, params.OrgName)
	case temporal.EmailApplicationRejected:
		err = a.Mailer.SendRejection(params.To, params.VolunteerName, params.EventTitle, params.OrgName)
	default:
		return fmt.Errorf("unknown email kind: %s", params.Kind)
	}

	if err != nil {
		logger.Error("Failed to send email", "kind", params.Kind, "error", err)
		return errors.Wrapf(err, "send %s email", params.Kind)
	}
	return nil
}
