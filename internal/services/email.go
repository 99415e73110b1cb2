package services

import (
	"context"
	"fmt"
	"log"

	"conferencecentral/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendConfirmation sends the creation confirmation email using the
// "confirmation" template and the given data.
func (s *emailService) SendConfirmation(ctx context.Context, data *domain.ConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("confirmation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Confirmation sent to %s", data.Email)
	return nil
}
