package postgres

import (
	"context"
	"database/sql"
	"errors"

	"attendancebook/internal/domain"
)

type eventDateRepository struct {
	DB *sql.DB
}

// NewEventDateRepository returns a remote-mode event date repository.
func NewEventDateRepository(db *sql.DB) domain.EventDateRepository {
	return &eventDateRepository{DB: db}
}

func (r *eventDateRepository) Create(ctx context.Context, eventDate *domain.EventDate) error {
	query := `
		INSERT INTO event_dates (id, organization_id, date, title, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET date = EXCLUDED.date, title = EXCLUDED.title, location = EXCLUDED.location
	`
	_, err := r.DB.ExecContext(ctx, query,
		eventDate.ID, eventDate.OrganizationID, eventDate.Date, eventDate.Title, eventDate.Location, eventDate.CreatedAt)
	return err
}

func (r *eventDateRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.EventDate, error) {
	query := `
		SELECT id, organization_id, date, title, location, created_at
		FROM event_dates
		WHERE organization_id = $1
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	eventDates := make([]*domain.EventDate, 0)
	for rows.Next() {
		e := &domain.EventDate{}
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Date, &e.Title, &e.Location, &e.CreatedAt); err != nil {
			return nil, err
		}
		eventDates = append(eventDates, e)
	}
	return eventDates, rows.Err()
}

func (r *eventDateRepository) GetByID(ctx context.Context, orgID, id string) (*domain.EventDate, error) {
	query := `
		SELECT id, organization_id, date, title, location, created_at
		FROM event_dates
		WHERE organization_id = $1 AND id = $2
	`
	e := &domain.EventDate{}
	err := r.DB.QueryRowContext(ctx, query, orgID, id).
		Scan(&e.ID, &e.OrganizationID, &e.Date, &e.Title, &e.Location, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventDateRepository) Update(ctx context.Context, eventDate *domain.EventDate) error {
	query := `
		UPDATE event_dates SET date = $1, title = $2, location = $3
		WHERE organization_id = $4 AND id = $5
	`
	result, err := r.DB.ExecContext(ctx, query,
		eventDate.Date, eventDate.Title, eventDate.Location, eventDate.OrganizationID, eventDate.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventDateRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	query := `DELETE FROM event_dates WHERE organization_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, orgID, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
