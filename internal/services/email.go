package services

import (
	"context"
	"fmt"

	"awguestbook/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService over a mailer and a template
// renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendPasswordReset(ctx context.Context, data *domain.PasswordResetEmailData) error {
	subject, html, text, err := s.renderer.Render("password_reset", data)
	if err != nil {
		return fmt.Errorf("render password reset email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}
