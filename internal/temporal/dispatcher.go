package temporal

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	tc "go.temporal.io/sdk/client"
)

// Dispatcher starts email delivery workflows. Callers treat a failed start
// as a warning: the state change that triggered the email is already
// durable and must not be reverted.
type Dispatcher struct {
	client   tc.Client
	workflow interface{}
}

// NewDispatcher wraps a Temporal client. workflow is the email workflow
// function registered on the worker; it is passed in to avoid an import
// cycle with the workflows package.
func NewDispatcher(client tc.Client, workflow interface{}) *Dispatcher {
	return &Dispatcher{client: client, workflow: workflow}
}

// Dispatch fires one email workflow and returns without waiting for
// delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, params EmailParams) error {
	options := tc.StartWorkflowOptions{
		ID:        EmailWorkflowIDPrefix + uuid.New().String(),
		TaskQueue: TaskQueueName,
	}
	if _, err := d.client.ExecuteWorkflow(ctx, options, d.workflow, params); err != nil {
		return errors.Wrap(err, "start email workflow")
	}
	return nil
}
