package services

import (
	"context"
	"fmt"
	"log"

	"eventosia/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendInvitation sends the event invitation email with accept and reject links.
func (s *emailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	log.Printf("[EMAIL] Invitation email sent to %s", data.Email)
	return nil
}

// SendCredentials sends the temporary-credentials email to a user created
// through the new-user invitation flow.
func (s *emailService) SendCredentials(ctx context.Context, data *domain.CredentialsEmailData) error {
	if data == nil {
		return fmt.Errorf("credentials email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("credentials", data)
	if err != nil {
		return fmt.Errorf("failed to render credentials template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send credentials email: %w", err)
	}
	log.Printf("[EMAIL] Credentials email sent to %s", data.Email)
	return nil
}
