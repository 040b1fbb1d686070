package kvstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

func seedLegacyData(t *testing.T, store kv.Store) {
	t.Helper()
	require.NoError(t, store.Set(legacyGroupsKey,
		`[{"id":"g1","name":"フルート","order":1,"created_at":"2024-06-01T00:00:00Z"}]`))
	require.NoError(t, store.Set(legacyMembersKey,
		`[{"id":"m1","group_id":"g1","name":"田中","created_at":"2024-06-01T00:00:00Z"}]`))
	require.NoError(t, store.Set(legacyEventDatesKey,
		`[{"id":"e1","date":"2024-07-01","title":"練習","created_at":"2024-06-01T00:00:00Z"}]`))
	require.NoError(t, store.Set(legacyAttendancesKey,
		`[{"id":"a1","event_date_id":"e1","member_id":"m1","status":"◯","created_at":"2024-06-02T00:00:00Z"}]`))
}

func TestMigrator_Run(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	seedLegacyData(t, store)

	res := NewMigrator(store).Run(ctx)
	require.NoError(t, res.Err)
	require.True(t, res.Migrated)
	require.Len(t, res.OrganizationID, 10)

	// The adopting organization exists.
	orgs, err := NewOrganizationRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, res.OrganizationID, orgs[0].ID)
	require.Equal(t, "マイ団体", orgs[0].Name)

	// All records were re-keyed under the new organization.
	groups, err := NewGroupRepository(store).ListByOrg(ctx, res.OrganizationID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, res.OrganizationID, groups[0].OrganizationID)

	members, err := NewMemberRepository(store).ListByOrg(ctx, res.OrganizationID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	eventDates, err := NewEventDateRepository(store).ListByOrg(ctx, res.OrganizationID)
	require.NoError(t, err)
	require.Len(t, eventDates, 1)

	atts, err := NewAttendanceRepository(store).ListByOrg(ctx, res.OrganizationID)
	require.NoError(t, err)
	require.Len(t, atts, 1)
	require.Equal(t, domain.StatusAttending, atts[0].Status)

	// Legacy keys are gone, completion flag is set.
	for _, key := range []string{legacyEventDatesKey, legacyGroupsKey, legacyMembersKey, legacyAttendancesKey} {
		has, err := store.Has(key)
		require.NoError(t, err)
		require.False(t, has, key)
	}
	done, err := NewMigrator(store).IsCompleted()
	require.NoError(t, err)
	require.True(t, done)
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	seedLegacyData(t, store)

	first := NewMigrator(store).Run(ctx)
	require.NoError(t, first.Err)
	require.True(t, first.Migrated)

	second := NewMigrator(store).Run(ctx)
	require.NoError(t, second.Err)
	require.False(t, second.Migrated)

	orgs, err := NewOrganizationRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, first.OrganizationID, orgs[0].ID)
}

func TestMigrator_NoLegacyDataSetsFlag(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	res := NewMigrator(store).Run(ctx)
	require.NoError(t, res.Err)
	require.False(t, res.Migrated)

	done, err := NewMigrator(store).IsCompleted()
	require.NoError(t, err)
	require.True(t, done)
}

func TestMigrator_MalformedLegacyJSONAbortsAndIsRetryable(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	seedLegacyData(t, store)
	require.NoError(t, store.Set(legacyMembersKey, "{not valid json"))

	res := NewMigrator(store).Run(ctx)
	require.Error(t, res.Err)
	require.False(t, res.Migrated)

	// Legacy keys intact, flag unset.
	for _, key := range []string{legacyEventDatesKey, legacyGroupsKey, legacyMembersKey, legacyAttendancesKey} {
		has, err := store.Has(key)
		require.NoError(t, err)
		require.True(t, has, key)
	}
	done, err := NewMigrator(store).IsCompleted()
	require.NoError(t, err)
	require.False(t, done)

	// Repair the bad key; the retry must succeed.
	fixed, err := json.Marshal([]*domain.Member{{ID: "m1", GroupID: "g1", Name: "田中"}})
	require.NoError(t, err)
	require.NoError(t, store.Set(legacyMembersKey, string(fixed)))

	retry := NewMigrator(store).Run(ctx)
	require.NoError(t, retry.Err)
	require.True(t, retry.Migrated)
}
