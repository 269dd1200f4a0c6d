package memory

import (
	"context"
	"sort"
	"sync"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

type MemoryBannerRepository struct {
	banners     map[domain.BannerID]*domain.Banner
	nextOrdinal int
	mu          sync.RWMutex
}

func NewMemoryBannerRepository() ports.BannerRepository {
	return &MemoryBannerRepository{
		banners: make(map[domain.BannerID]*domain.Banner),
	}
}

func (r *MemoryBannerRepository) Add(ctx context.Context, b *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.Ordinal = r.nextOrdinal
	r.nextOrdinal++

	clone := *b
	r.banners[b.ID] = &clone
	return nil
}

func (r *MemoryBannerRepository) GetByID(ctx context.Context, id domain.BannerID) (*domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.banners[id]
	if !exists {
		return nil, domain.ErrBannerNotFound
	}

	clone := *b
	return &clone, nil
}

func (r *MemoryBannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.banners[b.ID]
	if !exists {
		return domain.ErrBannerNotFound
	}

	clone := *b
	clone.Ordinal = existing.Ordinal
	r.banners[b.ID] = &clone
	return nil
}

func (r *MemoryBannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Banner, 0, len(r.banners))
	for _, b := range r.banners {
		clone := *b
		all = append(all, &clone)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Ordinal < all[j].Ordinal
	})

	return all, nil
}
