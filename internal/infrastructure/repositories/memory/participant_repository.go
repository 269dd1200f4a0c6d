package memory

import (
	"context"
	"sort"
	"sync"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

type MemoryParticipantRepository struct {
	participants map[domain.ParticipantID]*domain.Participant
	nextOrdinal  int
	mu           sync.RWMutex
}

func NewMemoryParticipantRepository() ports.ParticipantRepository {
	return &MemoryParticipantRepository{
		participants: make(map[domain.ParticipantID]*domain.Participant),
	}
}

func (r *MemoryParticipantRepository) Add(ctx context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.participants[p.ID]; exists {
		return domain.ErrDuplicateParticipant
	}

	p.Ordinal = r.nextOrdinal
	r.nextOrdinal++

	clone := *p
	r.participants[p.ID] = &clone
	return nil
}

func (r *MemoryParticipantRepository) GetByID(ctx context.Context, id domain.ParticipantID) (*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.participants[id]
	if !exists {
		return nil, domain.ErrParticipantNotFound
	}

	clone := *p
	return &clone, nil
}

func (r *MemoryParticipantRepository) Update(ctx context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.participants[p.ID]
	if !exists {
		return domain.ErrParticipantNotFound
	}

	clone := *p
	clone.Ordinal = existing.Ordinal
	r.participants[p.ID] = &clone
	return nil
}

func (r *MemoryParticipantRepository) Remove(ctx context.Context, id domain.ParticipantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.participants[id]; !exists {
		return domain.ErrParticipantNotFound
	}

	delete(r.participants, id)
	return nil
}

func (r *MemoryParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		clone := *p
		all = append(all, &clone)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Ordinal < all[j].Ordinal
	})

	return all, nil
}
