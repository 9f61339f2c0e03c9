package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/mailer"
)

const contactSubject = "New Message"

type ContactService struct {
	Sender mailer.Sender
}

func FormatContactMessage(name, email, phone, message string) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s", name, email, phone, message)
}

func (s *ContactService) SendContact(ctx context.Context, name, email, phone, message string) error {
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("name, email and message required: %w", ErrValidation)
	}
	return s.Sender.Send(ctx, contactSubject, FormatContactMessage(name, email, phone, message))
}
