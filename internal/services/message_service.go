package services

import (
	"context"
	"log"
	"strings"

	"ouveo-backend/internal/models"
	"ouveo-backend/internal/repositories"
)

// MessageService triages inbound contact-form leads.
type MessageService struct {
	messageRepo *repositories.MessageRepository
}

func NewMessageService(messageRepo *repositories.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Submit records a contact-form lead. This is the one unauthenticated write
// on the platform, so inputs are checked strictly.
func (s *MessageService) Submit(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error) {
	name := strings.TrimSpace(req.Name)
	body := strings.TrimSpace(req.Body)
	if name == "" || body == "" {
		return nil, validation("name and body are required")
	}
	if req.Email == "" && req.Phone == "" {
		return nil, validation("an email or phone number is required")
	}

	msg := &models.Message{
		Name:    name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Body:    body,
		Status:  models.MessageNew,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	log.Printf("[Message] new lead from %s", msg.Name)
	return msg, nil
}

// Get returns one lead.
func (s *MessageService) Get(ctx context.Context, id int) (*models.Message, error) {
	msg, err := s.messageRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	return msg, nil
}

// List returns leads, optionally filtered by status.
func (s *MessageService) List(ctx context.Context, status models.MessageStatus) ([]*models.Message, error) {
	if status != "" && status != models.MessageNew && status != models.MessageProcessed {
		return nil, validation("unknown message status")
	}
	return s.messageRepo.List(ctx, status)
}

// MarkProcessed closes a lead, recording who handled it.
func (s *MessageService) MarkProcessed(ctx context.Context, id, handledByID int) (*models.Message, error) {
	msg, err := s.messageRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	if msg.Status == models.MessageProcessed {
		return msg, nil
	}

	if err := s.messageRepo.MarkProcessed(ctx, id, handledByID); err != nil {
		return nil, err
	}
	msg.Status = models.MessageProcessed
	msg.HandledByID = &handledByID
	return msg, nil
}

// Delete removes a lead.
func (s *MessageService) Delete(ctx context.Context, id int) error {
	msg, err := s.messageRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrNotFound
	}
	return s.messageRepo.Delete(ctx, id)
}
