package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/vollink/vollink-api/internal/models"
)

const uniqueViolation = "23505"

type ApplicationRepository interface {
	Create(ctx context.Context, application models.Application) (models.Application, error)
	GetByID(ctx context.Context, applicationID string) (models.Application, error)
	UpdateStatusIfPending(ctx context.Context, applicationID string, status models.ApplicationStatus) (models.Application, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]models.Application, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Application, error)
	ListPendingByOrg(ctx context.Context, orgID string) ([]models.Application, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)
}

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, event_id, volunteer_id, org_id, volunteer_name, volunteer_email, event_title, organization_name, status, applied_at`

// Create inserts a pending application. The unique constraint on
// (event_id, volunteer_id) is the dedup check: a second apply for the same
// pair fails here even when two requests race.
func (r *applicationRepository) Create(ctx context.Context, application models.Application) (models.Application, error) {
	const query = `
		INSERT INTO applications (event_id, volunteer_id, org_id, volunteer_name, volunteer_email, event_title, organization_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + applicationColumns

	row := r.db.QueryRowContext(ctx, query,
		application.EventID,
		application.VolunteerID,
		application.OrgID,
		application.VolunteerName,
		application.VolunteerEmail,
		application.EventTitle,
		application.OrganizationName,
		models.ApplicationStatusPending,
	)

	created, err := scanApplication(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Application{}, ErrDuplicateApplication
		}
		return models.Application{}, err
	}
	return created, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, applicationID string) (models.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	application, err := scanApplication(r.db.QueryRowContext(ctx, query, applicationID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Application{}, ErrNotFound
	}
	return application, err
}

// UpdateStatusIfPending is the one-shot transition: the update only matches
// rows still in pending, so a second decision on the same application
// affects zero rows no matter how requests interleave.
func (r *applicationRepository) UpdateStatusIfPending(ctx context.Context, applicationID string, status models.ApplicationStatus) (models.Application, error) {
	const query = `
		UPDATE applications
		SET status = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + applicationColumns

	application, err := scanApplication(r.db.QueryRowContext(ctx, query, applicationID, status))
	if errors.Is(err, sql.ErrNoRows) {
		// Zero rows: either the application is gone or it is already decided.
		if _, getErr := r.GetByID(ctx, applicationID); getErr != nil {
			return models.Application{}, getErr
		}
		return models.Application{}, ErrInvalidTransition
	}
	return application, err
}

func (r *applicationRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]models.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE volunteer_id = $1
		ORDER BY applied_at DESC`
	return r.list(ctx, query, volunteerID)
}

func (r *applicationRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE event_id = $1
		ORDER BY applied_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *applicationRepository) ListPendingByOrg(ctx context.Context, orgID string) ([]models.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE org_id = $1 AND status = 'pending'
		ORDER BY applied_at DESC`
	return r.list(ctx, query, orgID)
}

// CountByOrg counts applications across all of the organization's events.
// The applications table is the single source of truth for this number.
func (r *applicationRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	const query = `SELECT COUNT(*) FROM applications WHERE org_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(&count)
	return count, err
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return applications, nil
}

func scanApplication(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Application, error) {
	var application models.Application
	if err := scanner.Scan(
		&application.ID,
		&application.EventID,
		&application.VolunteerID,
		&application.OrgID,
		&application.VolunteerName,
		&application.VolunteerEmail,
		&application.EventTitle,
		&application.OrganizationName,
		&application.Status,
		&application.AppliedAt,
	); err != nil {
		return models.Application{}, err
	}
	return application, nil
}
