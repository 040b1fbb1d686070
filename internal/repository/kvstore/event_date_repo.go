package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

type eventDateRepository struct {
	store kv.Store
}

// NewEventDateRepository returns an embedded-mode event date repository.
func NewEventDateRepository(store kv.Store) domain.EventDateRepository {
	return &eventDateRepository{store: store}
}

func (r *eventDateRepository) load(orgID string) ([]*domain.EventDate, error) {
	raw, ok, err := r.store.Get(eventDatesKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("load event dates: %w", err)
	}
	if !ok {
		return []*domain.EventDate{}, nil
	}
	var all []*domain.EventDate
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return []*domain.EventDate{}, nil
	}
	valid := make([]*domain.EventDate, 0, len(all))
	for _, e := range all {
		if e == nil || e.Validate() != nil {
			continue
		}
		valid = append(valid, e)
	}
	return valid, nil
}

func (r *eventDateRepository) save(orgID string, eventDates []*domain.EventDate) error {
	raw, err := json.Marshal(eventDates)
	if err != nil {
		return fmt.Errorf("encode event dates: %w", err)
	}
	if err := r.store.Set(eventDatesKey(orgID), string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return nil
}

func (r *eventDateRepository) Create(ctx context.Context, eventDate *domain.EventDate) error {
	eventDates, err := r.load(eventDate.OrganizationID)
	if err != nil {
		return err
	}
	eventDates = append(eventDates, eventDate)
	return r.save(eventDate.OrganizationID, eventDates)
}

func (r *eventDateRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.EventDate, error) {
	eventDates, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	// YYYY-MM-DD sorts correctly as a string.
	sort.SliceStable(eventDates, func(i, j int) bool {
		return eventDates[i].Date < eventDates[j].Date
	})
	return eventDates, nil
}

func (r *eventDateRepository) GetByID(ctx context.Context, orgID, id string) (*domain.EventDate, error) {
	eventDates, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	for _, e := range eventDates {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *eventDateRepository) Update(ctx context.Context, eventDate *domain.EventDate) error {
	eventDates, err := r.load(eventDate.OrganizationID)
	if err != nil {
		return err
	}
	for i, existing := range eventDates {
		if existing.ID == eventDate.ID {
			eventDates[i] = eventDate
			return r.save(eventDate.OrganizationID, eventDates)
		}
	}
	return domain.ErrNotFound
}

func (r *eventDateRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	eventDates, err := r.load(orgID)
	if err != nil {
		return false, err
	}
	remaining := make([]*domain.EventDate, 0, len(eventDates))
	for _, e := range eventDates {
		if e.ID != id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(eventDates) {
		return false, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return false, err
	}
	return true, nil
}
