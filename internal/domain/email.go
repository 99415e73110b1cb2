package domain

import "context"

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template with data, returning
// subject, html body, and text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// ConfirmationEmailData is the payload for the creation confirmation email.
type ConfirmationEmailData struct {
	Email string
	Info  string
}

// EmailService sends the transactional emails dispatched by the task queue.
type EmailService interface {
	SendConfirmation(ctx context.Context, data *ConfirmationEmailData) error
}
