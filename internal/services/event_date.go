package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendancebook/internal/domain"
)

type eventDateService struct {
	eventDateRepo domain.EventDateRepository
}

// NewEventDateService creates an EventDateService with the given repository.
func NewEventDateService(eventDateRepo domain.EventDateRepository) domain.EventDateService {
	return &eventDateService{eventDateRepo: eventDateRepo}
}

func (s *eventDateService) Create(ctx context.Context, orgID string, input domain.CreateEventDateInput) (*domain.EventDate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	eventDate := &domain.EventDate{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Date:           input.Date,
		Title:          input.Title,
		Location:       input.Location,
		CreatedAt:      time.Now(),
	}
	if err := s.eventDateRepo.Create(ctx, eventDate); err != nil {
		return nil, fmt.Errorf("create event date: %w", err)
	}
	return eventDate, nil
}

func (s *eventDateService) List(ctx context.Context, orgID string) ([]*domain.EventDate, error) {
	eventDates, err := s.eventDateRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list event dates: %w", err)
	}
	return eventDates, nil
}

func (s *eventDateService) GetByID(ctx context.Context, orgID, id string) (*domain.EventDate, error) {
	eventDate, err := s.eventDateRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event date: %w", err)
	}
	return eventDate, nil
}

func (s *eventDateService) Update(ctx context.Context, orgID, id string, patch domain.UpdateEventDateInput) (*domain.EventDate, error) {
	eventDate, err := s.eventDateRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event date: %w", err)
	}
	patch.ApplyTo(eventDate)
	if err := eventDate.Validate(); err != nil {
		return nil, err
	}
	if err := s.eventDateRepo.Update(ctx, eventDate); err != nil {
		return nil, fmt.Errorf("update event date: %w", err)
	}
	return eventDate, nil
}

func (s *eventDateService) Delete(ctx context.Context, orgID, id string) (bool, error) {
	removed, err := s.eventDateRepo.Delete(ctx, orgID, id)
	if err != nil {
		return false, fmt.Errorf("delete event date: %w", err)
	}
	return removed, nil
}
