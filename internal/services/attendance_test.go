package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
	"attendancebook/internal/repository/kvstore"
)

// attendanceFixture wires the attendance service against an in-memory store
// with one group and its members already created.
type attendanceFixture struct {
	svc        domain.AttendanceService
	groups     domain.GroupService
	members    domain.MemberService
	repo       domain.AttendanceRepository
	memberRepo domain.MemberRepository
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	store := kv.NewMemoryStore()
	attendanceRepo := kvstore.NewAttendanceRepository(store)
	groupRepo := kvstore.NewGroupRepository(store)
	memberRepo := kvstore.NewMemberRepository(store)
	return &attendanceFixture{
		svc:        NewAttendanceService(attendanceRepo, groupRepo, memberRepo),
		groups:     NewGroupService(groupRepo, memberRepo, attendanceRepo),
		members:    NewMemberService(memberRepo, groupRepo),
		repo:       attendanceRepo,
		memberRepo: memberRepo,
	}
}

func (f *attendanceFixture) addGroup(t *testing.T, orgID, name string, order int) *domain.Group {
	t.Helper()
	g, err := f.groups.Create(context.Background(), orgID, domain.CreateGroupInput{Name: name, Order: order})
	require.NoError(t, err)
	return g
}

func (f *attendanceFixture) addMember(t *testing.T, orgID, groupID, name string) *domain.Member {
	t.Helper()
	m, err := f.members.Create(context.Background(), orgID, domain.CreateMemberInput{GroupID: groupID, Name: name})
	require.NoError(t, err)
	return m
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	att, created, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: domain.StatusAttending,
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, domain.StatusAttending, att.Status)

	updated, created, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: domain.StatusNotAttending,
	})
	require.NoError(t, err)
	require.False(t, created)
	assert.Equal(t, att.ID, updated.ID)
	assert.Equal(t, domain.StatusNotAttending, updated.Status)

	all, err := f.svc.ListByEvent(ctx, orgID, "ev1")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpsertRejectsInvalidStatus(t *testing.T) {
	f := newAttendanceFixture(t)

	_, _, err := f.svc.Upsert(context.Background(), "org1", domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: "yes",
	})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestUpsertCollapsesDuplicates(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"
	base := time.Now()

	// Two records for the same (event date, member) pair, as if written
	// concurrently. The newer one must win.
	older := &domain.Attendance{
		ID: "a-old", OrganizationID: orgID, EventDateID: "ev1", MemberID: "m1",
		Status: domain.StatusMaybe, CreatedAt: base.Add(-time.Hour),
	}
	newer := &domain.Attendance{
		ID: "a-new", OrganizationID: orgID, EventDateID: "ev1", MemberID: "m1",
		Status: domain.StatusAttending, CreatedAt: base,
	}
	require.NoError(t, f.repo.Create(ctx, older))
	require.NoError(t, f.repo.Create(ctx, newer))

	att, created, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: domain.StatusNotAttending,
	})
	require.NoError(t, err)
	require.False(t, created)
	assert.Equal(t, "a-new", att.ID)

	all, err := f.svc.ListByEvent(ctx, orgID, "ev1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusNotAttending, all[0].Status)
}

func TestBulkUpsertMixedCreateUpdateFailed(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	_, created, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: domain.StatusMaybe,
	})
	require.NoError(t, err)
	require.True(t, created)

	result, err := f.svc.BulkUpsert(ctx, orgID, []domain.UpsertAttendanceInput{
		{EventDateID: "ev1", MemberID: "m1", Status: domain.StatusAttending},    // update
		{EventDateID: "ev1", MemberID: "m2", Status: domain.StatusAttending},    // create
		{EventDateID: "ev1", MemberID: "m3", Status: "maybe"},                   // invalid status
		{EventDateID: "", MemberID: "m4", Status: domain.StatusNotAttending},    // missing event date
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Len(t, result.Updated, 1)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, "m3", result.Failed[0].Input.MemberID)

	all, err := f.svc.List(ctx, orgID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBulkUpsertInvalidRecordsDoNotAbortBatch(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	result, err := f.svc.BulkUpsert(ctx, "org1", []domain.UpsertAttendanceInput{
		{EventDateID: "ev1", MemberID: "", Status: domain.StatusAttending},
		{EventDateID: "ev1", MemberID: "m2", Status: domain.StatusMaybe},
	})
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	require.Len(t, result.Created, 1)
	assert.Contains(t, result.Failed[0].Error, "member_id")
}

func TestEventSummaryCountsPerGroupInOrder(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	flutes := f.addGroup(t, orgID, "フルート", 1)
	brass := f.addGroup(t, orgID, "金管", 2)
	idle := f.addGroup(t, orgID, "打楽器", 3)

	m1 := f.addMember(t, orgID, flutes.ID, "田中")
	m2 := f.addMember(t, orgID, flutes.ID, "鈴木")
	m3 := f.addMember(t, orgID, brass.ID, "佐藤")
	f.addMember(t, orgID, idle.ID, "高橋") // never responds

	for _, in := range []domain.UpsertAttendanceInput{
		{EventDateID: "ev1", MemberID: m1.ID, Status: domain.StatusAttending},
		{EventDateID: "ev1", MemberID: m2.ID, Status: domain.StatusMaybe},
		{EventDateID: "ev1", MemberID: m3.ID, Status: domain.StatusNotAttending},
	} {
		_, _, err := f.svc.Upsert(ctx, orgID, in)
		require.NoError(t, err)
	}

	summaries, err := f.svc.EventSummary(ctx, orgID, "ev1")
	require.NoError(t, err)
	require.Len(t, summaries, 2, "groups without responses are omitted")

	require.Equal(t, flutes.ID, summaries[0].GroupID)
	assert.Equal(t, 1, summaries[0].Attending)
	assert.Equal(t, 1, summaries[0].Maybe)
	assert.Equal(t, 0, summaries[0].NotAttending)
	assert.Equal(t, 2, summaries[0].Total)

	require.Equal(t, brass.ID, summaries[1].GroupID)
	assert.Equal(t, 1, summaries[1].NotAttending)
	assert.Equal(t, 1, summaries[1].Total)

	for _, s := range summaries {
		assert.Equal(t, s.Total, s.Attending+s.Maybe+s.NotAttending)
	}
}

func TestEventTotalSummaryCountsDistinctMembers(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"
	base := time.Now()

	// Duplicate records for m1; only the newest counts.
	require.NoError(t, f.repo.Create(ctx, &domain.Attendance{
		ID: "a1", OrganizationID: orgID, EventDateID: "ev1", MemberID: "m1",
		Status: domain.StatusAttending, CreatedAt: base.Add(-time.Minute),
	}))
	require.NoError(t, f.repo.Create(ctx, &domain.Attendance{
		ID: "a2", OrganizationID: orgID, EventDateID: "ev1", MemberID: "m1",
		Status: domain.StatusNotAttending, CreatedAt: base,
	}))
	require.NoError(t, f.repo.Create(ctx, &domain.Attendance{
		ID: "a3", OrganizationID: orgID, EventDateID: "ev1", MemberID: "m2",
		Status: domain.StatusAttending, CreatedAt: base,
	}))

	summary, err := f.svc.EventTotalSummary(ctx, orgID, "ev1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalResponded)
	assert.Equal(t, 1, summary.Attending)
	assert.Equal(t, 1, summary.NotAttending)
	assert.Equal(t, 0, summary.Maybe)
}

func TestGroupMemberAttendancesIncludesUnanswered(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	orgID := "org1"

	group := f.addGroup(t, orgID, "フルート", 1)
	kaede := f.addMember(t, orgID, group.ID, "かえで")
	aoi := f.addMember(t, orgID, group.ID, "あおい")

	_, _, err := f.svc.Upsert(ctx, orgID, domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: kaede.ID, Status: domain.StatusAttending,
	})
	require.NoError(t, err)

	rows, err := f.svc.GroupMemberAttendances(ctx, orgID, group.ID, "ev1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by name: あおい before かえで.
	require.Equal(t, aoi.ID, rows[0].MemberID)
	assert.Nil(t, rows[0].Status)
	assert.False(t, rows[0].HasRegistered)

	require.Equal(t, kaede.ID, rows[1].MemberID)
	require.NotNil(t, rows[1].Status)
	assert.Equal(t, domain.StatusAttending, *rows[1].Status)
	assert.True(t, rows[1].HasRegistered)
}

func TestAttendanceTenantIsolation(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Upsert(ctx, "org1", domain.UpsertAttendanceInput{
		EventDateID: "ev1", MemberID: "m1", Status: domain.StatusAttending,
	})
	require.NoError(t, err)

	other, err := f.svc.List(ctx, "org2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
