package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
)

func TestAttendanceRepository_ApplyBatch(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	upserts := []*domain.Attendance{
		{ID: "a-1", OrganizationID: "org-1", EventDateID: "e-1", MemberID: "m-1", Status: domain.StatusAttending, CreatedAt: createdAt},
		{ID: "a-2", OrganizationID: "org-1", EventDateID: "e-1", MemberID: "m-2", Status: domain.StatusMaybe, CreatedAt: createdAt},
	}

	t.Run("upserts and deletes in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO attendances`).
			WithArgs("a-1", "org-1", "e-1", "m-1", domain.StatusAttending, createdAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO attendances`).
			WithArgs("a-2", "org-1", "e-1", "m-2", domain.StatusMaybe, createdAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM attendances WHERE organization_id = \$1 AND id = ANY\(\$2\)`).
			WithArgs("org-1", pq.Array([]string{"a-old"})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewAttendanceRepository(db)
		err = repo.ApplyBatch(ctx, "org-1", upserts, []string{"a-old"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO attendances`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewAttendanceRepository(db)
		err = repo.ApplyBatch(ctx, "org-1", upserts[:1], nil)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAttendanceRepository(db)
		require.NoError(t, repo.ApplyBatch(ctx, "org-1", nil, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "organization_id", "event_date_id", "member_id", "status", "created_at"}).
		AddRow("a-1", "org-1", "e-1", "m-1", "◯", createdAt).
		AddRow("a-2", "org-1", "e-1", "m-2", "✗", createdAt)
	mock.ExpectQuery(`SELECT id, organization_id, event_date_id, member_id, status, created_at`).
		WithArgs("org-1", "e-1").
		WillReturnRows(rows)

	repo := NewAttendanceRepository(db)
	got, err := repo.ListByEvent(ctx, "org-1", "e-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.StatusAttending, got[0].Status)
	require.Equal(t, domain.StatusNotAttending, got[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_DeleteByMembers(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM attendances WHERE organization_id = \$1 AND member_id = ANY\(\$2\)`).
		WithArgs("org-1", pq.Array([]string{"m-1", "m-2"})).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewAttendanceRepository(db)
	n, err := repo.DeleteByMembers(ctx, "org-1", []string{"m-1", "m-2"})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
