package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageInput is a contact form submission
type MessageInput struct {
	Name    string
	Email   string
	Subject string
	Content string
}

// MessageService defines the interface for the contact inbox
type MessageService interface {
	Submit(ctx context.Context, input MessageInput) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
	ToggleRead(ctx context.Context, id string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(messageRepo repository.MessageRepository, logger *zap.Logger) MessageService {
	return &messageService{messageRepo: messageRepo, logger: logger}
}

func (s *messageService) Submit(ctx context.Context, input MessageInput) (*domain.Message, error) {
	message := &domain.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Content: strings.TrimSpace(input.Content),
	}
	if message.Name == "" || message.Email == "" || message.Subject == "" || message.Content == "" {
		return nil, ErrIncompleteData
	}
	if !domain.IsValidEmail(message.Email) {
		return nil, ErrInvalidEmail
	}

	message.ID = "msg_" + uuid.NewString()[:8]
	message.CreatedAt = time.Now()

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Info("Contact message received", zap.String("message_id", message.ID))
	return message, nil
}

func (s *messageService) List(ctx context.Context) ([]*domain.Message, error) {
	messages, err := s.messageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (s *messageService) ToggleRead(ctx context.Context, id string) (*domain.Message, error) {
	message, err := s.messageRepo.ToggleRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle message: %w", err)
	}
	return message, nil
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}
