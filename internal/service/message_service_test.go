package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"aaamo-store/internal/repository"
	"aaamo-store/internal/seed"

	"go.uber.org/zap"
)

func newMessageService() MessageService {
	return NewMessageService(repository.NewInMemoryMessageRepository(seed.Messages(time.Now())), zap.NewNop())
}

func TestSubmitMessage(t *testing.T) {
	svc := newMessageService()

	message, err := svc.Submit(context.Background(), MessageInput{
		Name:    " سارة ",
		Email:   "sara@example.com",
		Subject: "شحن",
		Content: "متى يصل الطلب؟",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if message.IsRead || message.Name != "سارة" || message.ID == "" {
		t.Errorf("Unexpected message: %+v", message)
	}

	messages, _ := svc.List(context.Background())
	if messages[0].ID != message.ID {
		t.Errorf("Expected newest message first, got %s", messages[0].ID)
	}
}

func TestSubmitMessageValidation(t *testing.T) {
	tests := []struct {
		name  string
		input MessageInput
		want  error
	}{
		{"missing content", MessageInput{Name: "a", Email: "a@b.co", Subject: "s"}, ErrIncompleteData},
		{"blank subject", MessageInput{Name: "a", Email: "a@b.co", Subject: "  ", Content: "c"}, ErrIncompleteData},
		{"bad email", MessageInput{Name: "a", Email: "not-an-email", Subject: "s", Content: "c"}, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMessageService()
			if _, err := svc.Submit(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Submit() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestToggleReadTwiceRestoresFlag(t *testing.T) {
	svc := newMessageService()
	ctx := context.Background()

	first, err := svc.ToggleRead(ctx, "msg_seed_1")
	if err != nil {
		t.Fatalf("ToggleRead() error = %v", err)
	}
	if !first.IsRead {
		t.Error("Expected message to be read after first toggle")
	}

	second, err := svc.ToggleRead(ctx, "msg_seed_1")
	if err != nil {
		t.Fatalf("ToggleRead() error = %v", err)
	}
	if second.IsRead {
		t.Error("Expected message to be unread after second toggle")
	}

	if _, err := svc.ToggleRead(ctx, "msg_missing"); !errors.Is(err, repository.ErrMessageNotFound) {
		t.Errorf("Expected message not found, got %v", err)
	}
}

func TestDeleteMessage(t *testing.T) {
	svc := newMessageService()
	ctx := context.Background()

	if err := svc.Delete(ctx, "msg_seed_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, "msg_seed_1"); !errors.Is(err, repository.ErrMessageNotFound) {
		t.Errorf("Expected message not found, got %v", err)
	}
}
