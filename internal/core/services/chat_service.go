package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/utils"
)

type chatService struct {
	repo ports.ChatRepository
}

func NewChatService(repo ports.ChatRepository) ports.ChatService {
	return &chatService{repo: repo}
}

func (s *chatService) Post(ctx context.Context, sender, text string) (*domain.ChatMessage, error) {
	sender = strings.TrimSpace(sender)
	text = strings.TrimSpace(text)
	if sender == "" {
		return nil, fmt.Errorf("chat sender is required")
	}
	if text == "" {
		return nil, fmt.Errorf("chat text is required")
	}

	m := &domain.ChatMessage{
		ID:     domain.ChatMessageID(utils.GenerateChatMessageID()),
		Sender: sender,
		Text:   text,
		SentAt: time.Now(),
	}
	if err := s.repo.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *chatService) List(ctx context.Context) ([]*domain.ChatMessage, error) {
	return s.repo.List(ctx)
}
