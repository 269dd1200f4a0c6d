package memory

import (
	"context"
	"sync"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

type MemoryChatRepository struct {
	messages []*domain.ChatMessage
	mu       sync.RWMutex
}

func NewMemoryChatRepository() ports.ChatRepository {
	return &MemoryChatRepository{}
}

func (r *MemoryChatRepository) Append(ctx context.Context, m *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *m
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *MemoryChatRepository) List(ctx context.Context) ([]*domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.ChatMessage, 0, len(r.messages))
	for _, m := range r.messages {
		clone := *m
		all = append(all, &clone)
	}
	return all, nil
}
