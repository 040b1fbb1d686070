package postgres

import (
	"context"
	"database/sql"
	"errors"

	"attendancebook/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

// NewGroupRepository returns a remote-mode group repository.
func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{DB: db}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, organization_id, name, sort_order, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order, color = EXCLUDED.color
	`
	_, err := r.DB.ExecContext(ctx, query,
		group.ID, group.OrganizationID, group.Name, group.Order, group.Color, group.CreatedAt)
	return err
}

func (r *groupRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Group, error) {
	query := `
		SELECT id, organization_id, name, sort_order, color, created_at
		FROM groups
		WHERE organization_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := make([]*domain.Group, 0)
	for rows.Next() {
		g := &domain.Group{}
		if err := rows.Scan(&g.ID, &g.OrganizationID, &g.Name, &g.Order, &g.Color, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Group, error) {
	query := `
		SELECT id, organization_id, name, sort_order, color, created_at
		FROM groups
		WHERE organization_id = $1 AND id = $2
	`
	g := &domain.Group{}
	err := r.DB.QueryRowContext(ctx, query, orgID, id).
		Scan(&g.ID, &g.OrganizationID, &g.Name, &g.Order, &g.Color, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) Update(ctx context.Context, group *domain.Group) error {
	query := `
		UPDATE groups SET name = $1, sort_order = $2, color = $3
		WHERE organization_id = $4 AND id = $5
	`
	result, err := r.DB.ExecContext(ctx, query,
		group.Name, group.Order, group.Color, group.OrganizationID, group.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	query := `DELETE FROM groups WHERE organization_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, orgID, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
