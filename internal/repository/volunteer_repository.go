package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/vollink/vollink-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type VolunteerRepository interface {
	Create(ctx context.Context, name, email, password, phone string) (models.Volunteer, error)
	Authenticate(ctx context.Context, email, password string) (models.Volunteer, error)
	GetByID(ctx context.Context, volunteerID string) (models.Volunteer, error)
	UpdateProfile(ctx context.Context, volunteerID, name, phone, bio string, skills []string) (models.Volunteer, error)
}

type volunteerRepository struct {
	db *sql.DB
}

func NewVolunteerRepository(db *sql.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

const volunteerColumns = `id, name, email, password_hash, phone, bio, skills, created_at, updated_at`

func (r *volunteerRepository) Create(ctx context.Context, name, email, password, phone string) (models.Volunteer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Volunteer{}, err
	}

	const query = `
		INSERT INTO volunteers (name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + volunteerColumns

	volunteer, err := scanVolunteer(r.db.QueryRowContext(ctx, query,
		strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)),
		string(hash),
		strings.TrimSpace(phone),
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Volunteer{}, ErrEmailTaken
		}
		return models.Volunteer{}, err
	}
	return volunteer, nil
}

func (r *volunteerRepository) Authenticate(ctx context.Context, email, password string) (models.Volunteer, error) {
	const query = `SELECT ` + volunteerColumns + ` FROM volunteers WHERE email = $1`

	volunteer, err := scanVolunteer(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Volunteer{}, ErrInvalidCredentials
		}
		return models.Volunteer{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(volunteer.PasswordHash), []byte(password)); err != nil {
		return models.Volunteer{}, ErrInvalidCredentials
	}

	return volunteer, nil
}

func (r *volunteerRepository) GetByID(ctx context.Context, volunteerID string) (models.Volunteer, error) {
	const query = `SELECT ` + volunteerColumns + ` FROM volunteers WHERE id = $1`

	volunteer, err := scanVolunteer(r.db.QueryRowContext(ctx, query, volunteerID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Volunteer{}, ErrNotFound
	}
	return volunteer, err
}

func (r *volunteerRepository) UpdateProfile(ctx context.Context, volunteerID, name, phone, bio string, skills []string) (models.Volunteer, error) {
	const query = `
		UPDATE volunteers
		SET name = $2, phone = $3, bio = $4, skills = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + volunteerColumns

	volunteer, err := scanVolunteer(r.db.QueryRowContext(ctx, query,
		volunteerID,
		strings.TrimSpace(name),
		strings.TrimSpace(phone),
		strings.TrimSpace(bio),
		pq.Array(skills),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Volunteer{}, ErrNotFound
	}
	return volunteer, err
}

func scanVolunteer(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Volunteer, error) {
	var (
		volunteer models.Volunteer
		skills    pq.StringArray
	)

	if err := scanner.Scan(
		&volunteer.ID,
		&volunteer.Name,
		&volunteer.Email,
		&volunteer.PasswordHash,
		&volunteer.Phone,
		&volunteer.Bio,
		&skills,
		&volunteer.CreatedAt,
		&volunteer.UpdatedAt,
	); err != nil {
		return models.Volunteer{}, err
	}

	volunteer.Skills = skills
	return volunteer, nil
}
