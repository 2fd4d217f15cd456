package workflows

import (
	"time"

	sdktemporal "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/vollink/vollink-api/internal/temporal"
	"github.com/vollink/vollink-api/internal/temporal/activities"
)

// EmailWorkflow delivers one transactional email with retries. The workflow
// runs after the triggering state change has already committed, so a mail
// server outage delays the email but never the decision.
func EmailWorkflow(ctx workflow.Context, params temporal.EmailParams) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: temporal.DefaultActivityTimeout,
		RetryPolicy: &sdktemporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)
	logger.Info("Starting email workflow", "Kind", params.Kind, "To", params.To)

	// The actual implementation is on the worker; this is just a proxy.
	var a *activities.Activities

	if err := workflow.ExecuteActivity(ctx, a.SendEmailActivity, params).Get(ctx, nil); err != nil {
		logger.Error("Email delivery failed after retries.", "Kind", params.Kind, "error", err)
		return err
	}

	logger.Info("Email workflow completed.", "Kind", params.Kind)
	return nil
}
