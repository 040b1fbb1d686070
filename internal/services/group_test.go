package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
	"attendancebook/internal/repository/kvstore"
)

func TestGroupCreateValidation(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input domain.CreateGroupInput
		field string
	}{
		{"empty name", domain.CreateGroupInput{Name: "   "}, "name"},
		{"negative order", domain.CreateGroupInput{Name: "フルート", Order: -1}, "order"},
		{"bad color", domain.CreateGroupInput{Name: "フルート", Color: "red"}, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.groups.Create(ctx, "org1", tt.input)
			require.Error(t, err)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}
}

func TestGroupCreateCollectsAllInvalidFields(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.groups.Create(context.Background(), "org1", domain.CreateGroupInput{
		Name:  "",
		Order: -2,
		Color: "blue",
	})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 3)
}

func TestGroupUpdateMergesAndRevalidates(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	group := f.addGroup(t, orgID, "フルート", 1)

	newName := "  クラリネット  "
	updated, err := f.groups.Update(ctx, orgID, group.ID, domain.UpdateGroupInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "クラリネット", updated.Name)
	assert.Equal(t, 1, updated.Order, "omitted fields are unchanged")

	badOrder := -1
	_, err = f.groups.Update(ctx, orgID, group.ID, domain.UpdateGroupInput{Order: &badOrder})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestGroupDeleteCascadesToMembersAndAttendances(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	doomed := f.addGroup(t, orgID, "打楽器", 1)
	kept := f.addGroup(t, orgID, "フルート", 2)
	m1 := f.addMember(t, orgID, doomed.ID, "田中")
	m2 := f.addMember(t, orgID, kept.ID, "鈴木")

	for _, memberID := range []string{m1.ID, m2.ID} {
		_, _, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
			EventDateID: "ev1", MemberID: memberID, Status: domain.StatusAttending,
		})
		require.NoError(t, err)
	}

	removed, err := f.groups.Delete(ctx, orgID, doomed.ID)
	require.NoError(t, err)
	require.True(t, removed)

	members, err := f.members.List(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, m2.ID, members[0].ID)

	atts, err := f.svc.List(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, m2.ID, atts[0].MemberID)
}

func TestGroupDeleteAbsentReturnsFalse(t *testing.T) {
	f := newAttendanceFixture(t)

	removed, err := f.groups.Delete(context.Background(), "org1", "nope")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGroupListSortedByOrder(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	f.addGroup(t, orgID, "金管", 3)
	f.addGroup(t, orgID, "フルート", 1)
	f.addGroup(t, orgID, "打楽器", 2)

	groups, err := f.groups.List(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "フルート", groups[0].Name)
	assert.Equal(t, "打楽器", groups[1].Name)
	assert.Equal(t, "金管", groups[2].Name)
}

func TestMemberCreateRequiresExistingGroup(t *testing.T) {
	store := kv.NewMemoryStore()
	memberRepo := kvstore.NewMemberRepository(store)
	groupRepo := kvstore.NewGroupRepository(store)
	svc := NewMemberService(memberRepo, groupRepo)

	_, err := svc.Create(context.Background(), "org1", domain.CreateMemberInput{
		GroupID: "missing", Name: "田中",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
