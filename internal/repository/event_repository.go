package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/vollink/vollink-api/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	GetByID(ctx context.Context, eventID string) (models.Event, error)
	SetStatus(ctx context.Context, eventID string, status models.EventStatus) error
	ListByOrg(ctx context.Context, orgID string) ([]models.Event, error)
	ListAll(ctx context.Context, search string) ([]models.Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]models.Event, error)
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, org_id, title, description, date, location, required_volunteers, skills_required, status, created_at`

// Listings order by date descending; events without a date take the sentinel
// minimum and rank as oldest.
const eventOrder = `ORDER BY COALESCE(date, '2000-01-01'::timestamp) DESC`

func (r *eventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	const query = `
		INSERT INTO events (org_id, title, description, date, location, required_volunteers, skills_required, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	var date interface{}
	if event.Date != nil {
		date = models.StripZone(*event.Date)
	}

	row := r.db.QueryRowContext(ctx, query,
		event.OrgID,
		event.Title,
		event.Description,
		date,
		event.Location,
		event.RequiredVolunteers,
		pq.Array(event.SkillsRequired),
		event.Status,
	)
	return scanEvent(row)
}

func (r *eventRepository) GetByID(ctx context.Context, eventID string) (models.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrNotFound
	}
	return event, err
}

func (r *eventRepository) SetStatus(ctx context.Context, eventID string, status models.EventStatus) error {
	const query = `
		UPDATE events
		SET status = $2, updated_at = now()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, eventID, status)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE org_id = $1 ` + eventOrder
	return r.list(ctx, query, orgID)
}

func (r *eventRepository) ListAll(ctx context.Context, search string) ([]models.Event, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		const query = `SELECT ` + eventColumns + ` FROM events ` + eventOrder
		return r.list(ctx, query)
	}

	const query = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		` + eventOrder
	return r.list(ctx, query, search)
}

// ListUpcoming keeps events dated now or later. Undated events stay in the
// feed; only events known to be in the past drop out.
func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]models.Event, error) {
	const query = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date IS NULL OR date >= $1
		` + eventOrder
	return r.list(ctx, query, models.StripZone(now))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func scanEvent(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Event, error) {
	var (
		event  models.Event
		date   sql.NullTime
		skills pq.StringArray
	)

	if err := scanner.Scan(
		&event.ID,
		&event.OrgID,
		&event.Title,
		&event.Description,
		&date,
		&event.Location,
		&event.RequiredVolunteers,
		&skills,
		&event.Status,
		&event.CreatedAt,
	); err != nil {
		return models.Event{}, err
	}

	if date.Valid {
		t := models.StripZone(date.Time)
		event.Date = &t
	}
	event.SkillsRequired = skills

	return event, nil
}
