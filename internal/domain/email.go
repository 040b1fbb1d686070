package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventReminderEmailData holds data for the event reminder email.
type EventReminderEmailData struct {
	MemberName       string
	OrganizationName string
	EventTitle       string
	EventDate        string
	EventLocation    string
}

// ReminderResult reports how a reminder run went. Skipped counts members
// without an email address on file.
type ReminderResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	// SendEventReminders mails every member who has an email address and no
	// attendance record for the event date.
	SendEventReminders(ctx context.Context, orgID, eventDateID string) (*ReminderResult, error)
}
