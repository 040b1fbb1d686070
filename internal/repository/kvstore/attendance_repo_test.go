package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

// countingStore counts writes so tests can assert batch operations hit the
// store exactly once.
type countingStore struct {
	kv.Store
	sets int
}

func (s *countingStore) Set(key, value string) error {
	s.sets++
	return s.Store.Set(key, value)
}

func att(id, orgID, eventID, memberID string, status domain.AttendanceStatus, createdAt time.Time) *domain.Attendance {
	return &domain.Attendance{
		ID:             id,
		OrganizationID: orgID,
		EventDateID:    eventID,
		MemberID:       memberID,
		Status:         status,
		CreatedAt:      createdAt,
	}
}

func TestAttendanceRepository_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(kv.NewMemoryStore())
	now := time.Now()

	a := att("a1", "org-a", "e1", "m1", domain.StatusAttending, now)
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.ListByOrg(ctx, "org-a")
	require.NoError(t, err)
	require.Len(t, got, 1)

	other, err := repo.ListByOrg(ctx, "org-b")
	require.NoError(t, err)
	require.Empty(t, other)

	_, err = repo.GetByID(ctx, "org-b", "a1")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAttendanceRepository_LoadDropsCorruptRows(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewAttendanceRepository(store)

	// One valid row, one with an unknown status, one missing its member.
	require.NoError(t, store.Set(attendancesKey("org-a"),
		`[{"id":"a1","organization_id":"org-a","event_date_id":"e1","member_id":"m1","status":"◯","created_at":"2025-01-01T00:00:00Z"},
		  {"id":"a2","organization_id":"org-a","event_date_id":"e1","member_id":"m2","status":"?","created_at":"2025-01-01T00:00:00Z"},
		  {"id":"a3","organization_id":"org-a","event_date_id":"e1","member_id":"","status":"△","created_at":"2025-01-01T00:00:00Z"}]`))

	got, err := repo.ListByOrg(ctx, "org-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a1", got[0].ID)
}

func TestAttendanceRepository_LoadUnparseableBlobReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewAttendanceRepository(store)

	require.NoError(t, store.Set(attendancesKey("org-a"), "{corrupt"))

	got, err := repo.ListByOrg(ctx, "org-a")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAttendanceRepository_ApplyBatchSingleWrite(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: kv.NewMemoryStore()}
	repo := NewAttendanceRepository(store)
	now := time.Now()

	seed := []*domain.Attendance{
		att("a1", "org-a", "e1", "m1", domain.StatusAttending, now),
		att("a2", "org-a", "e1", "m2", domain.StatusMaybe, now),
	}
	require.NoError(t, repo.ApplyBatch(ctx, "org-a", seed, nil))
	store.sets = 0

	// Replace a1's status, add a3, drop a2 — one write.
	updated := att("a1", "org-a", "e1", "m1", domain.StatusNotAttending, now)
	added := att("a3", "org-a", "e2", "m1", domain.StatusAttending, now)
	require.NoError(t, repo.ApplyBatch(ctx, "org-a", []*domain.Attendance{updated, added}, []string{"a2"}))
	require.Equal(t, 1, store.sets)

	got, err := repo.ListByOrg(ctx, "org-a")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]*domain.Attendance{}
	for _, a := range got {
		byID[a.ID] = a
	}
	require.Equal(t, domain.StatusNotAttending, byID["a1"].Status)
	require.NotNil(t, byID["a3"])
	require.Nil(t, byID["a2"])
}

func TestAttendanceRepository_DeleteAbsentReturnsFalse(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(kv.NewMemoryStore())

	removed, err := repo.Delete(ctx, "org-a", "nope")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestAttendanceRepository_DeleteByMembers(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(kv.NewMemoryStore())
	now := time.Now()

	require.NoError(t, repo.Create(ctx, att("a1", "org-a", "e1", "m1", domain.StatusAttending, now)))
	require.NoError(t, repo.Create(ctx, att("a2", "org-a", "e2", "m1", domain.StatusMaybe, now)))
	require.NoError(t, repo.Create(ctx, att("a3", "org-a", "e1", "m2", domain.StatusAttending, now)))

	n, err := repo.DeleteByMembers(ctx, "org-a", []string{"m1"})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := repo.ListByOrg(ctx, "org-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a3", got[0].ID)
}

func TestAttendanceRepository_SaveFailureSurfacesStorageError(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	store.FailWrites = true
	repo := NewAttendanceRepository(store)

	err := repo.Create(ctx, att("a1", "org-a", "e1", "m1", domain.StatusAttending, time.Now()))
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrStorageFailed))
}
