package memory

import (
	"context"
	"sort"
	"sync"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

type MemoryDestinationRepository struct {
	destinations map[domain.DestinationID]*domain.Destination
	nextOrdinal  int
	mu           sync.RWMutex
}

func NewMemoryDestinationRepository() ports.DestinationRepository {
	return &MemoryDestinationRepository{
		destinations: make(map[domain.DestinationID]*domain.Destination),
	}
}

func (r *MemoryDestinationRepository) Add(ctx context.Context, d *domain.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.Ordinal = r.nextOrdinal
	r.nextOrdinal++

	clone := *d
	r.destinations[d.ID] = &clone
	return nil
}

func (r *MemoryDestinationRepository) GetByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.destinations[id]
	if !exists {
		return nil, domain.ErrDestinationNotFound
	}

	clone := *d
	return &clone, nil
}

func (r *MemoryDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.destinations[d.ID]
	if !exists {
		return domain.ErrDestinationNotFound
	}

	clone := *d
	clone.Ordinal = existing.Ordinal
	r.destinations[d.ID] = &clone
	return nil
}

func (r *MemoryDestinationRepository) Remove(ctx context.Context, id domain.DestinationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.destinations[id]; !exists {
		return domain.ErrDestinationNotFound
	}

	delete(r.destinations, id)
	return nil
}

func (r *MemoryDestinationRepository) List(ctx context.Context) ([]*domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Destination, 0, len(r.destinations))
	for _, d := range r.destinations {
		clone := *d
		all = append(all, &clone)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Ordinal < all[j].Ordinal
	})

	return all, nil
}
