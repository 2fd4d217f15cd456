package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vollink/vollink-api/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error)
	ListRecent(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) (models.Notification, error)
}

type notificationRepository struct {
	db *sql.DB
}

type CreateNotificationParams struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Message     string
	EventID     string
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, recipient_id, title, message, type, event_id, read, created_at`

func (r *notificationRepository) Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error) {
	const query = `
		INSERT INTO notifications (recipient_id, title, message, type, event_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + notificationColumns

	row := r.db.QueryRowContext(ctx, query,
		strings.TrimSpace(params.RecipientID),
		params.Title,
		params.Message,
		params.Type,
		params.EventID,
	)
	return scanNotification(row)
}

func (r *notificationRepository) ListRecent(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	const query = `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(recipientID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notif)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag. Scoped to the recipient so one actor cannot
// touch another's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID, notificationID string) (models.Notification, error) {
	const query = `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND recipient_id = $2
		RETURNING ` + notificationColumns

	notif, err := scanNotification(r.db.QueryRowContext(ctx, query, strings.TrimSpace(notificationID), strings.TrimSpace(recipientID)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, ErrNotFound
	}
	return notif, err
}

func scanNotification(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Notification, error) {
	var notif models.Notification
	if err := scanner.Scan(
		&notif.ID,
		&notif.RecipientID,
		&notif.Title,
		&notif.Message,
		&notif.Type,
		&notif.EventID,
		&notif.Read,
		&notif.CreatedAt,
	); err != nil {
		return models.Notification{}, err
	}
	return notif, nil
}
