package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
)

func TestGroupRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		group   *domain.Group
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			group: &domain.Group{
				ID:             "g-1",
				OrganizationID: "org-1",
				Name:           "Flute",
				Order:          1,
				Color:          "#ff0000",
				CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO groups`).
					WithArgs("g-1", "org-1", "Flute", 1, "#ff0000", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "db error",
			group: &domain.Group{
				ID:             "g-1",
				OrganizationID: "org-1",
				Name:           "Flute",
				CreatedAt:      time.Now(),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO groups`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGroupRepository(db)
			err = repo.Create(ctx, tt.group)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupRepository_ListByOrg(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		orgID   string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Group
		wantErr bool
	}{
		{
			name:  "sorted by sort_order",
			orgID: "org-1",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "organization_id", "name", "sort_order", "color", "created_at"}).
					AddRow("g-1", "org-1", "Flute", 1, "", createdAt).
					AddRow("g-2", "org-1", "Oboe", 2, "#00ff00", createdAt)
				mock.ExpectQuery(`SELECT id, organization_id, name, sort_order, color, created_at`).
					WithArgs("org-1").
					WillReturnRows(rows)
			},
			want: []*domain.Group{
				{ID: "g-1", OrganizationID: "org-1", Name: "Flute", Order: 1, CreatedAt: createdAt},
				{ID: "g-2", OrganizationID: "org-1", Name: "Oboe", Order: 2, Color: "#00ff00", CreatedAt: createdAt},
			},
			wantErr: false,
		},
		{
			name:  "empty",
			orgID: "org-none",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, organization_id, name, sort_order, color, created_at`).
					WithArgs("org-none").
					WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "name", "sort_order", "color", "created_at"}))
			},
			want:    []*domain.Group{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGroupRepository(db)
			got, err := repo.ListByOrg(ctx, tt.orgID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, organization_id, name, sort_order, color, created_at`).
		WithArgs("org-1", "g-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewGroupRepository(db)
	got, err := repo.GetByID(context.Background(), "org-1", "g-missing")
	require.Nil(t, got)
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		id          string
		mock        func(mock sqlmock.Sqlmock)
		wantRemoved bool
		wantErr     bool
	}{
		{
			name: "removed",
			id:   "g-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM groups WHERE organization_id = \$1 AND id = \$2`).
					WithArgs("org-1", "g-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantRemoved: true,
		},
		{
			name: "absent returns false, not an error",
			id:   "g-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM groups WHERE organization_id = \$1 AND id = \$2`).
					WithArgs("org-1", "g-missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantRemoved: false,
		},
		{
			name: "db error",
			id:   "g-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM groups WHERE organization_id = \$1 AND id = \$2`).
					WithArgs("org-1", "g-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGroupRepository(db)
			removed, err := repo.Delete(ctx, "org-1", tt.id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRemoved, removed)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
