package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"attendancebook/internal/domain"
)

type attendanceService struct {
	attendanceRepo domain.AttendanceRepository
	groupRepo      domain.GroupRepository
	memberRepo     domain.MemberRepository
}

// NewAttendanceService creates an AttendanceService. Group and member
// repositories are needed for the cross-referencing summaries.
func NewAttendanceService(
	attendanceRepo domain.AttendanceRepository,
	groupRepo domain.GroupRepository,
	memberRepo domain.MemberRepository,
) domain.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		groupRepo:      groupRepo,
		memberRepo:     memberRepo,
	}
}

func (s *attendanceService) Create(ctx context.Context, orgID string, input domain.CreateAttendanceInput) (*domain.Attendance, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	att := &domain.Attendance{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		EventDateID:    input.EventDateID,
		MemberID:       input.MemberID,
		Status:         input.Status,
		CreatedAt:      time.Now(),
	}
	if err := s.attendanceRepo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return att, nil
}

func (s *attendanceService) List(ctx context.Context, orgID string) ([]*domain.Attendance, error) {
	atts, err := s.attendanceRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	return atts, nil
}

func (s *attendanceService) ListByEvent(ctx context.Context, orgID, eventDateID string) ([]*domain.Attendance, error) {
	atts, err := s.attendanceRepo.ListByEvent(ctx, orgID, eventDateID)
	if err != nil {
		return nil, fmt.Errorf("list event attendances: %w", err)
	}
	return atts, nil
}

func (s *attendanceService) Delete(ctx context.Context, orgID, id string) (bool, error) {
	removed, err := s.attendanceRepo.Delete(ctx, orgID, id)
	if err != nil {
		return false, fmt.Errorf("delete attendance: %w", err)
	}
	return removed, nil
}

// keepNewest picks the most recently created record out of duplicates for one
// (event date, member) key and returns the IDs of the records to discard.
func keepNewest(matches []*domain.Attendance) (*domain.Attendance, []string) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	dropIDs := make([]string, 0, len(matches)-1)
	for _, a := range matches[1:] {
		dropIDs = append(dropIDs, a.ID)
	}
	return matches[0], dropIDs
}

func (s *attendanceService) Upsert(ctx context.Context, orgID string, input domain.UpsertAttendanceInput) (*domain.Attendance, bool, error) {
	if err := input.Validate(); err != nil {
		return nil, false, err
	}
	existing, err := s.attendanceRepo.ListByEvent(ctx, orgID, input.EventDateID)
	if err != nil {
		return nil, false, fmt.Errorf("list event attendances: %w", err)
	}
	var matches []*domain.Attendance
	for _, a := range existing {
		if a.MemberID == input.MemberID {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		att := &domain.Attendance{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			EventDateID:    input.EventDateID,
			MemberID:       input.MemberID,
			Status:         input.Status,
			CreatedAt:      time.Now(),
		}
		if err := s.attendanceRepo.ApplyBatch(ctx, orgID, []*domain.Attendance{att}, nil); err != nil {
			return nil, false, fmt.Errorf("create attendance: %w", err)
		}
		return att, true, nil
	}

	newest, dropIDs := keepNewest(matches)
	updated := *newest
	updated.Status = input.Status
	if err := s.attendanceRepo.ApplyBatch(ctx, orgID, []*domain.Attendance{&updated}, dropIDs); err != nil {
		return nil, false, fmt.Errorf("update attendance: %w", err)
	}
	return &updated, false, nil
}

func attendanceKey(eventDateID, memberID string) string {
	return eventDateID + "\x00" + memberID
}

// BulkUpsert applies every input against one in-memory snapshot of the
// organization's records and writes back exactly once. Invalid inputs are
// collected into the result's failed list; they never abort the batch.
func (s *attendanceService) BulkUpsert(ctx context.Context, orgID string, inputs []domain.UpsertAttendanceInput) (*domain.BulkUpsertResult, error) {
	all, err := s.attendanceRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	byKey := make(map[string][]*domain.Attendance, len(all))
	for _, a := range all {
		k := attendanceKey(a.EventDateID, a.MemberID)
		byKey[k] = append(byKey[k], a)
	}

	result := &domain.BulkUpsertResult{
		Created: []*domain.Attendance{},
		Updated: []*domain.Attendance{},
		Failed:  []domain.BulkUpsertFailure{},
	}
	var upserts []*domain.Attendance
	var dropIDs []string
	staged := make(map[string]*domain.Attendance)

	for _, input := range inputs {
		if err := input.Validate(); err != nil {
			result.Failed = append(result.Failed, domain.BulkUpsertFailure{
				Input: input,
				Error: err.Error(),
			})
			continue
		}
		k := attendanceKey(input.EventDateID, input.MemberID)
		matches := byKey[k]
		if len(matches) == 0 {
			att := &domain.Attendance{
				ID:             uuid.NewString(),
				OrganizationID: orgID,
				EventDateID:    input.EventDateID,
				MemberID:       input.MemberID,
				Status:         input.Status,
				CreatedAt:      time.Now(),
			}
			byKey[k] = []*domain.Attendance{att}
			staged[att.ID] = att
			upserts = append(upserts, att)
			result.Created = append(result.Created, att)
			continue
		}
		newest, drop := keepNewest(matches)
		newest.Status = input.Status
		byKey[k] = []*domain.Attendance{newest}
		dropIDs = append(dropIDs, drop...)
		if _, alreadyStaged := staged[newest.ID]; !alreadyStaged {
			staged[newest.ID] = newest
			upserts = append(upserts, newest)
			result.Updated = append(result.Updated, newest)
		}
	}

	if err := s.attendanceRepo.ApplyBatch(ctx, orgID, upserts, dropIDs); err != nil {
		return nil, fmt.Errorf("apply bulk upsert: %w", err)
	}
	return result, nil
}

// EventSummary counts an event's responses per group, broken down by status.
// Groups come back in display order; groups with no responses are omitted.
func (s *attendanceService) EventSummary(ctx context.Context, orgID, eventDateID string) ([]*domain.GroupSummary, error) {
	groups, err := s.groupRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	members, err := s.memberRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	atts, err := s.attendanceRepo.ListByEvent(ctx, orgID, eventDateID)
	if err != nil {
		return nil, fmt.Errorf("list event attendances: %w", err)
	}

	groupOfMember := make(map[string]string, len(members))
	for _, m := range members {
		groupOfMember[m.ID] = m.GroupID
	}
	byGroup := make(map[string]*domain.GroupSummary, len(groups))
	for _, g := range groups {
		byGroup[g.ID] = &domain.GroupSummary{GroupID: g.ID, GroupName: g.Name}
	}

	for _, a := range atts {
		groupID, ok := groupOfMember[a.MemberID]
		if !ok {
			continue
		}
		summary, ok := byGroup[groupID]
		if !ok {
			continue
		}
		switch a.Status {
		case domain.StatusAttending:
			summary.Attending++
		case domain.StatusMaybe:
			summary.Maybe++
		case domain.StatusNotAttending:
			summary.NotAttending++
		}
		summary.Total++
	}

	result := make([]*domain.GroupSummary, 0, len(groups))
	for _, g := range groups {
		if summary := byGroup[g.ID]; summary.Total > 0 {
			result = append(result, summary)
		}
	}
	return result, nil
}

// EventTotalSummary counts distinct responding members by status. Duplicate
// records per member are collapsed to the newest before counting, even though
// upserts already keep the collection deduplicated.
func (s *attendanceService) EventTotalSummary(ctx context.Context, orgID, eventDateID string) (*domain.EventTotalSummary, error) {
	atts, err := s.attendanceRepo.ListByEvent(ctx, orgID, eventDateID)
	if err != nil {
		return nil, fmt.Errorf("list event attendances: %w", err)
	}
	newestByMember := make(map[string]*domain.Attendance, len(atts))
	for _, a := range atts {
		current, ok := newestByMember[a.MemberID]
		if !ok || a.CreatedAt.After(current.CreatedAt) {
			newestByMember[a.MemberID] = a
		}
	}

	summary := &domain.EventTotalSummary{}
	for _, a := range newestByMember {
		switch a.Status {
		case domain.StatusAttending:
			summary.Attending++
		case domain.StatusMaybe:
			summary.Maybe++
		case domain.StatusNotAttending:
			summary.NotAttending++
		}
		summary.TotalResponded++
	}
	return summary, nil
}

// GroupMemberAttendances joins a group's members against one event's records.
// Members without a record get a nil status. Rows are sorted by member name
// with Japanese collation.
func (s *attendanceService) GroupMemberAttendances(ctx context.Context, orgID, groupID, eventDateID string) ([]*domain.MemberAttendance, error) {
	members, err := s.memberRepo.ListByGroup(ctx, orgID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	atts, err := s.attendanceRepo.ListByEvent(ctx, orgID, eventDateID)
	if err != nil {
		return nil, fmt.Errorf("list event attendances: %w", err)
	}
	newestByMember := make(map[string]*domain.Attendance, len(atts))
	for _, a := range atts {
		current, ok := newestByMember[a.MemberID]
		if !ok || a.CreatedAt.After(current.CreatedAt) {
			newestByMember[a.MemberID] = a
		}
	}

	rows := make([]*domain.MemberAttendance, 0, len(members))
	for _, m := range members {
		row := &domain.MemberAttendance{
			MemberID:   m.ID,
			MemberName: m.Name,
		}
		if a, ok := newestByMember[m.ID]; ok {
			status := a.Status
			row.Status = &status
			row.HasRegistered = true
		}
		rows = append(rows, row)
	}

	c := collate.New(language.Japanese)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].MemberName, rows[j].MemberName) < 0
	})
	return rows, nil
}
