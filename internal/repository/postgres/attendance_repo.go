package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"attendancebook/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

// NewAttendanceRepository returns a remote-mode attendance repository.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

const attendanceUpsertQuery = `
	INSERT INTO attendances (id, organization_id, event_date_id, member_id, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
`

func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	_, err := r.DB.ExecContext(ctx, attendanceUpsertQuery,
		att.ID, att.OrganizationID, att.EventDateID, att.MemberID, att.Status, att.CreatedAt)
	return err
}

func (r *attendanceRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Attendance, error) {
	query := `
		SELECT id, organization_id, event_date_id, member_id, status, created_at
		FROM attendances
		WHERE organization_id = $1
	`
	return r.list(ctx, query, orgID)
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, orgID, eventDateID string) ([]*domain.Attendance, error) {
	query := `
		SELECT id, organization_id, event_date_id, member_id, status, created_at
		FROM attendances
		WHERE organization_id = $1 AND event_date_id = $2
	`
	return r.list(ctx, query, orgID, eventDateID)
}

func (r *attendanceRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Attendance, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	atts := make([]*domain.Attendance, 0)
	for rows.Next() {
		a := &domain.Attendance{}
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.EventDateID, &a.MemberID, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		atts = append(atts, a)
	}
	return atts, rows.Err()
}

func (r *attendanceRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Attendance, error) {
	query := `
		SELECT id, organization_id, event_date_id, member_id, status, created_at
		FROM attendances
		WHERE organization_id = $1 AND id = $2
	`
	a := &domain.Attendance{}
	err := r.DB.QueryRowContext(ctx, query, orgID, id).
		Scan(&a.ID, &a.OrganizationID, &a.EventDateID, &a.MemberID, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	query := `DELETE FROM attendances WHERE organization_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, orgID, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ApplyBatch performs all upserts and deletes in a single transaction so a
// bulk operation is atomic on this backend too.
func (r *attendanceRepository) ApplyBatch(ctx context.Context, orgID string, upserts []*domain.Attendance, deleteIDs []string) error {
	if len(upserts) == 0 && len(deleteIDs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	for _, a := range upserts {
		if _, err := tx.ExecContext(ctx, attendanceUpsertQuery,
			a.ID, orgID, a.EventDateID, a.MemberID, a.Status, a.CreatedAt); err != nil {
			return fmt.Errorf("upsert attendance %s: %w", a.ID, err)
		}
	}
	if len(deleteIDs) > 0 {
		query := `DELETE FROM attendances WHERE organization_id = $1 AND id = ANY($2)`
		if _, err := tx.ExecContext(ctx, query, orgID, pq.Array(deleteIDs)); err != nil {
			return fmt.Errorf("delete attendances: %w", err)
		}
	}
	return tx.Commit()
}

func (r *attendanceRepository) DeleteByMembers(ctx context.Context, orgID string, memberIDs []string) (int, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}
	query := `DELETE FROM attendances WHERE organization_id = $1 AND member_id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, orgID, pq.Array(memberIDs))
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
