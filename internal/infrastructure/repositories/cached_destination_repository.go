package repositories

import (
	"context"
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/cache"
)

const destinationCacheTTL = 30 * time.Second

// CachedDestinationRepository decorates a destination repository with a
// read-through cache. Destination reads happen on every view model build,
// so caching them keeps the hot path off Redis.
type CachedDestinationRepository struct {
	inner ports.DestinationRepository
	cache *cache.Cache
}

func NewCachedDestinationRepository(inner ports.DestinationRepository) *CachedDestinationRepository {
	return &CachedDestinationRepository{
		inner: inner,
		cache: cache.NewCache(destinationCacheTTL),
	}
}

const listCacheKey = "destinations:list"

func (r *CachedDestinationRepository) Add(ctx context.Context, d *domain.Destination) error {
	if err := r.inner.Add(ctx, d); err != nil {
		return err
	}
	r.cache.Delete(listCacheKey)
	return nil
}

func (r *CachedDestinationRepository) GetByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	key := "destinations:" + string(id)
	if v, ok := r.cache.Get(key); ok {
		return v.(*domain.Destination), nil
	}

	d, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, d)
	return d, nil
}

func (r *CachedDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	if err := r.inner.Update(ctx, d); err != nil {
		return err
	}
	r.cache.Delete("destinations:" + string(d.ID))
	r.cache.Delete(listCacheKey)
	return nil
}

func (r *CachedDestinationRepository) Remove(ctx context.Context, id domain.DestinationID) error {
	if err := r.inner.Remove(ctx, id); err != nil {
		return err
	}
	r.cache.Delete("destinations:" + string(id))
	r.cache.Delete(listCacheKey)
	return nil
}

func (r *CachedDestinationRepository) List(ctx context.Context) ([]*domain.Destination, error) {
	if v, ok := r.cache.Get(listCacheKey); ok {
		return v.([]*domain.Destination), nil
	}

	all, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(listCacheKey, all)
	return all, nil
}

// Stop releases the cache cleanup goroutine.
func (r *CachedDestinationRepository) Stop() {
	r.cache.Stop()
}
