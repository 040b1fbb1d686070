package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"attendancebook/internal/domain"
)

type emailService struct {
	mailer         domain.Mailer
	renderer       domain.EmailTemplateRenderer
	orgRepo        domain.OrganizationRepository
	eventDateRepo  domain.EventDateRepository
	memberRepo     domain.MemberRepository
	attendanceRepo domain.AttendanceRepository
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	orgRepo domain.OrganizationRepository,
	eventDateRepo domain.EventDateRepository,
	memberRepo domain.MemberRepository,
	attendanceRepo domain.AttendanceRepository,
) domain.EmailService {
	return &emailService{
		mailer:         mailer,
		renderer:       renderer,
		orgRepo:        orgRepo,
		eventDateRepo:  eventDateRepo,
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
	}
}

// SendEventReminders mails every member who has not responded to the event
// yet. Members without an email address on file are counted as skipped.
func (s *emailService) SendEventReminders(ctx context.Context, orgID, eventDateID string) (*domain.ReminderResult, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	event, err := s.eventDateRepo.GetByID(ctx, orgID, eventDateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event date: %w", err)
	}
	members, err := s.memberRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	atts, err := s.attendanceRepo.ListByEvent(ctx, orgID, eventDateID)
	if err != nil {
		return nil, fmt.Errorf("list event attendances: %w", err)
	}
	responded := make(map[string]struct{}, len(atts))
	for _, a := range atts {
		responded[a.MemberID] = struct{}{}
	}

	result := &domain.ReminderResult{}
	for _, m := range members {
		if _, ok := responded[m.ID]; ok {
			continue
		}
		if m.Email == "" {
			result.Skipped++
			continue
		}
		data := &domain.EventReminderEmailData{
			MemberName:       m.Name,
			OrganizationName: org.Name,
			EventTitle:       event.Title,
			EventDate:        event.Date,
			EventLocation:    event.Location,
		}
		subject, htmlBody, textBody, err := s.renderer.Render("event_reminder", data)
		if err != nil {
			return nil, fmt.Errorf("render event_reminder template: %w", err)
		}
		if err := s.mailer.Send(m.Email, subject, htmlBody, textBody); err != nil {
			log.Printf("[EMAIL] Reminder to %s failed: %v", m.Email, err)
			result.Failed++
			continue
		}
		result.Sent++
	}
	log.Printf("[EMAIL] Event reminders for %s: sent=%d skipped=%d failed=%d",
		eventDateID, result.Sent, result.Skipped, result.Failed)
	return result, nil
}
