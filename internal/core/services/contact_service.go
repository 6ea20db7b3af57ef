package services

import (
	"context"
	"log"

	"scrapseva/internal/adapters/persistence/models"
	"scrapseva/internal/adapters/persistence/repositories"
	"scrapseva/internal/pkg/pagination"
)

// ContactService handles the public contact form
type ContactService struct {
	contactRepo  *repositories.ContactRepository
	emailService *EmailService
}

// NewContactService creates a new contact service
func NewContactService(contactRepo *repositories.ContactRepository, emailService *EmailService) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		emailService: emailService,
	}
}

// Submit stores a contact message and sends an acknowledgment email
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.emailService.SendContactAck(ctx, email, name); err != nil {
		log.Printf("⚠️ Failed to send contact acknowledgment to %s: %v", email, err)
	}

	return msg, nil
}

// List returns stored contact messages for the admin inbox
func (s *ContactService) List(ctx context.Context, params *pagination.Params) ([]*models.ContactMessage, *pagination.Meta, error) {
	messages, total, err := s.contactRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}
	return messages, pagination.GetMeta(params, total), nil
}
