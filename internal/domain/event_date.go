package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// eventDateLayout is the wire format for event dates.
const eventDateLayout = "2006-01-02"

// EventDate is a scheduled occasion for which attendance is collected.
// Date is a plain YYYY-MM-DD string so listings sort lexicographically.
// swagger:model EventDate
type EventDate struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Date           string    `json:"date"`
	Title          string    `json:"title"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the full record.
func (e *EventDate) Validate() error {
	ve := &ValidationError{}
	if e.ID == "" {
		ve.add("id", "is required")
	}
	if e.OrganizationID == "" {
		ve.add("organization_id", "is required")
	}
	if !validEventDate(e.Date) {
		ve.add("date", "must be a valid YYYY-MM-DD date")
	}
	if n := utf8.RuneCountInString(e.Title); n < 1 || n > 100 {
		ve.add("title", "must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(e.Location) > 200 {
		ve.add("location", "must be at most 200 characters")
	}
	return ve.errOrNil()
}

func validEventDate(s string) bool {
	if len(s) != len(eventDateLayout) {
		return false
	}
	_, err := time.Parse(eventDateLayout, s)
	return err == nil
}

// CreateEventDateInput is the validated input for creating an event date.
type CreateEventDateInput struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// Validate trims free-text fields and reports every constraint violation.
func (in *CreateEventDateInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	ve := &ValidationError{}
	if !validEventDate(in.Date) {
		ve.add("date", "must be a valid YYYY-MM-DD date")
	}
	if n := utf8.RuneCountInString(in.Title); n < 1 || n > 100 {
		ve.add("title", "must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(in.Location) > 200 {
		ve.add("location", "must be at most 200 characters")
	}
	return ve.errOrNil()
}

// UpdateEventDateInput is a partial patch; nil fields are left unchanged.
type UpdateEventDateInput struct {
	Date     *string `json:"date"`
	Title    *string `json:"title"`
	Location *string `json:"location"`
}

// ApplyTo merges the patch onto e. The merged record must be revalidated.
func (in *UpdateEventDateInput) ApplyTo(e *EventDate) {
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
}

// EventDateRepository defines storage for event dates. ListByOrg returns
// event dates sorted by date ascending.
type EventDateRepository interface {
	Create(ctx context.Context, eventDate *EventDate) error
	ListByOrg(ctx context.Context, orgID string) ([]*EventDate, error)
	GetByID(ctx context.Context, orgID, id string) (*EventDate, error)
	Update(ctx context.Context, eventDate *EventDate) error
	Delete(ctx context.Context, orgID, id string) (bool, error)
}

// EventDateService defines event date CRUD.
type EventDateService interface {
	Create(ctx context.Context, orgID string, input CreateEventDateInput) (*EventDate, error)
	List(ctx context.Context, orgID string) ([]*EventDate, error)
	GetByID(ctx context.Context, orgID, id string) (*EventDate, error)
	Update(ctx context.Context, orgID, id string, patch UpdateEventDateInput) (*EventDate, error)
	Delete(ctx context.Context, orgID, id string) (bool, error)
}
