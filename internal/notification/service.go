package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vollink/vollink-api/internal/models"
	"github.com/vollink/vollink-api/internal/repository"
)

// Event describes a notification to persist and fan out.
type Event struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Message     string
	EventID     string
}

type Service interface {
	Publish(ctx context.Context, evt Event) (models.Notification, error)
	NotifyNewApplication(ctx context.Context, orgID, volunteerName, eventTitle, eventID string) error
	NotifyApplicationAccepted(ctx context.Context, volunteerID, eventTitle, eventID string) error
	NotifyApplicationRejected(ctx context.Context, volunteerID, eventTitle, eventID string) error
	ListRecent(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) (models.Notification, error)
}

type service struct {
	repo      repository.NotificationRepository
	logger    zerolog.Logger
	notifiers []Notifier
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger, notifiers ...Notifier) Service {
	active := make([]Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			active = append(active, notifier)
		}
	}
	return &service{
		repo:      repo,
		logger:    logger.With().Str("component", "notification_service").Logger(),
		notifiers: active,
	}
}

// Publish persists the notification, then offers it to every configured
// channel. The row is the durable record; channel failures are logged only.
func (s *service) Publish(ctx context.Context, evt Event) (models.Notification, error) {
	if evt.Type == "" {
		return models.Notification{}, fmt.Errorf("notification type is required")
	}
	if strings.TrimSpace(evt.RecipientID) == "" {
		return models.Notification{}, fmt.Errorf("recipient id is required")
	}
	title := strings.TrimSpace(evt.Title)
	if title == "" {
		title = string(evt.Type)
	}

	notif, err := s.repo.Create(ctx, repository.CreateNotificationParams{
		RecipientID: evt.RecipientID,
		Type:        evt.Type,
		Title:       title,
		Message:     strings.TrimSpace(evt.Message),
		EventID:     evt.EventID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("type", string(evt.Type)).Msg("failed to persist notification")
		return models.Notification{}, err
	}

	for _, notifier := range s.notifiers {
		if err := notifier.Notify(ctx, notif); err != nil {
			logNotifyError(s.logger, err, notifierChannelName(notifier), notif)
		}
	}
	return notif, nil
}

func (s *service) NotifyNewApplication(ctx context.Context, orgID, volunteerName, eventTitle, eventID string) error {
	_, err := s.Publish(ctx, Event{
		RecipientID: orgID,
		Type:        models.NotificationTypeNewApplication,
		Title:       "New Volunteer Application",
		Message:     fmt.Sprintf("%s has applied for %s", volunteerName, eventTitle),
		EventID:     eventID,
	})
	return err
}

func (s *service) NotifyApplicationAccepted(ctx context.Context, volunteerID, eventTitle, eventID string) error {
	_, err := s.Publish(ctx, Event{
		RecipientID: volunteerID,
		Type:        models.NotificationTypeApplicationAccepted,
		Title:       "Application Accepted",
		Message:     fmt.Sprintf("Your application for %s has been accepted!", eventTitle),
		EventID:     eventID,
	})
	return err
}

func (s *service) NotifyApplicationRejected(ctx context.Context, volunteerID, eventTitle, eventID string) error {
	_, err := s.Publish(ctx, Event{
		RecipientID: volunteerID,
		Type:        models.NotificationTypeApplicationRejected,
		Title:       "Application Status Update",
		Message:     fmt.Sprintf("Your application for %s was not accepted at this time.", eventTitle),
		EventID:     eventID,
	})
	return err
}

func (s *service) ListRecent(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, recipientID, limit)
}

func (s *service) MarkRead(ctx context.Context, recipientID, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, recipientID, notificationID)
}
