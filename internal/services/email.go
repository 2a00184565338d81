package services

import (
	"context"
	"fmt"
	"log"

	"confsite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendLoginToken sends the passwordless login link email using the "login_token" template.
func (s *emailService) SendLoginToken(ctx context.Context, data *domain.LoginTokenEmailData) error {
	if data == nil {
		return fmt.Errorf("login token email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(loginTokenTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", loginTokenTemplate, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send login token email: %w", err)
	}
	log.Printf("[EMAIL] Login link sent to %s", data.Email)
	return nil
}
