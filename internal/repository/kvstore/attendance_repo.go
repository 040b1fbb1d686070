package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

type attendanceRepository struct {
	store kv.Store
}

// NewAttendanceRepository returns an embedded-mode attendance repository.
func NewAttendanceRepository(store kv.Store) domain.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) load(orgID string) ([]*domain.Attendance, error) {
	raw, ok, err := r.store.Get(attendancesKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("load attendances: %w", err)
	}
	if !ok {
		return []*domain.Attendance{}, nil
	}
	var all []*domain.Attendance
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return []*domain.Attendance{}, nil
	}
	valid := make([]*domain.Attendance, 0, len(all))
	for _, a := range all {
		if a == nil || a.Validate() != nil {
			continue
		}
		valid = append(valid, a)
	}
	return valid, nil
}

func (r *attendanceRepository) save(orgID string, atts []*domain.Attendance) error {
	raw, err := json.Marshal(atts)
	if err != nil {
		return fmt.Errorf("encode attendances: %w", err)
	}
	if err := r.store.Set(attendancesKey(orgID), string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return nil
}

func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	atts, err := r.load(att.OrganizationID)
	if err != nil {
		return err
	}
	atts = append(atts, att)
	return r.save(att.OrganizationID, atts)
}

func (r *attendanceRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Attendance, error) {
	return r.load(orgID)
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, orgID, eventDateID string) ([]*domain.Attendance, error) {
	atts, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	forEvent := make([]*domain.Attendance, 0, len(atts))
	for _, a := range atts {
		if a.EventDateID == eventDateID {
			forEvent = append(forEvent, a)
		}
	}
	return forEvent, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Attendance, error) {
	atts, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	for _, a := range atts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *attendanceRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	atts, err := r.load(orgID)
	if err != nil {
		return false, err
	}
	remaining := make([]*domain.Attendance, 0, len(atts))
	for _, a := range atts {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	if len(remaining) == len(atts) {
		return false, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyBatch performs all upserts and deletes in one load/save cycle, so a
// bulk operation hits the store exactly once.
func (r *attendanceRepository) ApplyBatch(ctx context.Context, orgID string, upserts []*domain.Attendance, deleteIDs []string) error {
	if len(upserts) == 0 && len(deleteIDs) == 0 {
		return nil
	}
	atts, err := r.load(orgID)
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(deleteIDs))
	for _, id := range deleteIDs {
		drop[id] = struct{}{}
	}
	result := make([]*domain.Attendance, 0, len(atts)+len(upserts))
	byID := make(map[string]int, len(atts))
	for _, a := range atts {
		if _, gone := drop[a.ID]; gone {
			continue
		}
		byID[a.ID] = len(result)
		result = append(result, a)
	}
	for _, up := range upserts {
		if i, ok := byID[up.ID]; ok {
			result[i] = up
			continue
		}
		byID[up.ID] = len(result)
		result = append(result, up)
	}
	return r.save(orgID, result)
}

func (r *attendanceRepository) DeleteByMembers(ctx context.Context, orgID string, memberIDs []string) (int, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}
	atts, err := r.load(orgID)
	if err != nil {
		return 0, err
	}
	drop := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		drop[id] = struct{}{}
	}
	remaining := make([]*domain.Attendance, 0, len(atts))
	removed := 0
	for _, a := range atts {
		if _, gone := drop[a.MemberID]; gone {
			removed++
			continue
		}
		remaining = append(remaining, a)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return 0, err
	}
	return removed, nil
}
