package postgres

import (
	"context"
	"database/sql"
	"errors"

	"attendancebook/internal/domain"
)

type organizationRepository struct {
	DB *sql.DB
}

// NewOrganizationRepository returns a remote-mode organization repository.
func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{DB: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `
		INSERT INTO organizations (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description
	`
	_, err := r.DB.ExecContext(ctx, query, org.ID, org.Name, org.Description, org.CreatedAt)
	return err
}

func (r *organizationRepository) List(ctx context.Context) ([]*domain.Organization, error) {
	query := `
		SELECT id, name, description, created_at
		FROM organizations
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orgs := make([]*domain.Organization, 0)
	for rows.Next() {
		org := &domain.Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `
		SELECT id, name, description, created_at
		FROM organizations
		WHERE id = $1
	`
	org := &domain.Organization{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&org.ID, &org.Name, &org.Description, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `
		UPDATE organizations SET name = $1, description = $2
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, org.Name, org.Description, org.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *organizationRepository) Delete(ctx context.Context, id string) (bool, error) {
	// Scoped rows go with the organization via ON DELETE CASCADE.
	query := `DELETE FROM organizations WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
