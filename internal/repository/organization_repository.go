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

type OrganizationRepository interface {
	Create(ctx context.Context, name, email, password, description, phone string) (models.Organization, error)
	Authenticate(ctx context.Context, email, password string) (models.Organization, error)
	GetByID(ctx context.Context, orgID string) (models.Organization, error)
}

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

const organizationColumns = `id, name, email, password_hash, description, phone, created_at, updated_at`

func (r *organizationRepository) Create(ctx context.Context, name, email, password, description, phone string) (models.Organization, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Organization{}, err
	}

	const query = `
		INSERT INTO organizations (name, email, password_hash, description, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + organizationColumns

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query,
		strings.TrimSpace(name),
		strings.ToLower(strings.TrimSpace(email)),
		string(hash),
		strings.TrimSpace(description),
		strings.TrimSpace(phone),
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Organization{}, ErrEmailTaken
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (r *organizationRepository) Authenticate(ctx context.Context, email, password string) (models.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE email = $1`

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Organization{}, ErrInvalidCredentials
		}
		return models.Organization{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(org.PasswordHash), []byte(password)); err != nil {
		return models.Organization{}, ErrInvalidCredentials
	}

	return org, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, orgID string) (models.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, orgID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Organization{}, ErrNotFound
	}
	return org, err
}

func scanOrganization(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Organization, error) {
	var org models.Organization
	if err := scanner.Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.PasswordHash,
		&org.Description,
		&org.Phone,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}
