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

func newEventDateService(t *testing.T) domain.EventDateService {
	t.Helper()
	return NewEventDateService(kvstore.NewEventDateRepository(kv.NewMemoryStore()))
}

func TestEventDateCreateValidation(t *testing.T) {
	svc := newEventDateService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input domain.CreateEventDateInput
		field string
	}{
		{"bad date format", domain.CreateEventDateInput{Date: "2026/04/01", Title: "練習"}, "date"},
		{"impossible date", domain.CreateEventDateInput{Date: "2026-02-30", Title: "練習"}, "date"},
		{"missing title", domain.CreateEventDateInput{Date: "2026-04-01", Title: " "}, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "org1", tt.input)
			require.Error(t, err)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}
}

func TestEventDateListChronological(t *testing.T) {
	svc := newEventDateService(t)
	ctx := context.Background()
	orgID := "org1"

	for _, d := range []string{"2026-05-10", "2026-04-01", "2026-04-15"} {
		_, err := svc.Create(ctx, orgID, domain.CreateEventDateInput{Date: d, Title: "練習"})
		require.NoError(t, err)
	}

	eventDates, err := svc.List(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, eventDates, 3)
	assert.Equal(t, "2026-04-01", eventDates[0].Date)
	assert.Equal(t, "2026-04-15", eventDates[1].Date)
	assert.Equal(t, "2026-05-10", eventDates[2].Date)
}

func TestEventDateUpdatePatch(t *testing.T) {
	svc := newEventDateService(t)
	ctx := context.Background()
	orgID := "org1"

	eventDate, err := svc.Create(ctx, orgID, domain.CreateEventDateInput{
		Date: "2026-04-01", Title: "練習", Location: "市民ホール",
	})
	require.NoError(t, err)

	title := "定期演奏会"
	updated, err := svc.Update(ctx, orgID, eventDate.ID, domain.UpdateEventDateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "定期演奏会", updated.Title)
	assert.Equal(t, "2026-04-01", updated.Date, "omitted fields are unchanged")
	assert.Equal(t, "市民ホール", updated.Location)

	badDate := "not-a-date"
	_, err = svc.Update(ctx, orgID, eventDate.ID, domain.UpdateEventDateInput{Date: &badDate})
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.True(t, ok)
}

func TestEventDateDeleteAbsentReturnsFalse(t *testing.T) {
	svc := newEventDateService(t)

	removed, err := svc.Delete(context.Background(), "org1", "nope")
	require.NoError(t, err)
	assert.False(t, removed)
}
