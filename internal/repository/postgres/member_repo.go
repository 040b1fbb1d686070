package postgres

import (
	"context"
	"database/sql"
	"errors"

	"attendancebook/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

// NewMemberRepository returns a remote-mode member repository.
func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{DB: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (id, organization_id, group_id, name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email
	`
	_, err := r.DB.ExecContext(ctx, query,
		member.ID, member.OrganizationID, member.GroupID, member.Name, member.Email, member.CreatedAt)
	return err
}

func (r *memberRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Member, error) {
	query := `
		SELECT id, organization_id, group_id, name, email, created_at
		FROM members
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, orgID)
}

func (r *memberRepository) ListByGroup(ctx context.Context, orgID, groupID string) ([]*domain.Member, error) {
	query := `
		SELECT id, organization_id, group_id, name, email, created_at
		FROM members
		WHERE organization_id = $1 AND group_id = $2
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, orgID, groupID)
}

func (r *memberRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Member, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.Member, 0)
	for rows.Next() {
		m := &domain.Member{}
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.GroupID, &m.Name, &m.Email, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Member, error) {
	query := `
		SELECT id, organization_id, group_id, name, email, created_at
		FROM members
		WHERE organization_id = $1 AND id = $2
	`
	m := &domain.Member{}
	err := r.DB.QueryRowContext(ctx, query, orgID, id).
		Scan(&m.ID, &m.OrganizationID, &m.GroupID, &m.Name, &m.Email, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members SET name = $1, email = $2
		WHERE organization_id = $3 AND id = $4
	`
	result, err := r.DB.ExecContext(ctx, query,
		member.Name, member.Email, member.OrganizationID, member.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	query := `DELETE FROM members WHERE organization_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, orgID, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *memberRepository) DeleteByGroup(ctx context.Context, orgID, groupID string) ([]string, error) {
	query := `
		DELETE FROM members
		WHERE organization_id = $1 AND group_id = $2
		RETURNING id
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var removed []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		removed = append(removed, id)
	}
	return removed, rows.Err()
}
