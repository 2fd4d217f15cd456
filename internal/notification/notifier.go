package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/models"
)

// Notifier is an additional delivery channel for persisted notifications
// (push, webhooks). Delivery failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

func notifierChannelName(n Notifier) string {
	type named interface {
		String() string
	}
	if v, ok := n.(named); ok {
		return v.String()
	}
	return fmt.Sprintf("%T", n)
}

func logNotifyError(logger zerolog.Logger, err error, channel string, notif models.Notification) {
	if err == nil {
		return
	}
	logger.Warn().
		Err(err).
		Str("notification_id", notif.ID).
		Str("type", string(notif.Type)).
		Str("channel", channel).
		Msg("failed to deliver notification")
}
