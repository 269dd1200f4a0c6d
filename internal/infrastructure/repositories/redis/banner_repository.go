package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

// RedisBannerRepository keeps the operator's prepared banner queue across
// restarts. Active state is persisted too so the overlay survives a reload.
type RedisBannerRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisBannerRepository(client *redis.Client) ports.BannerRepository {
	return &RedisBannerRepository{
		client: client,
		prefix: "stagecast:banner:",
	}
}

func (r *RedisBannerRepository) bannerKey(id domain.BannerID) string {
	return r.prefix + string(id)
}

func (r *RedisBannerRepository) orderKey() string {
	return r.prefix + "order"
}

func (r *RedisBannerRepository) Add(ctx context.Context, b *domain.Banner) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal banner: %w", err)
	}

	if err := r.client.Set(ctx, r.bannerKey(b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set banner in Redis: %w", err)
	}

	if err := r.client.RPush(ctx, r.orderKey(), string(b.ID)).Err(); err != nil {
		return fmt.Errorf("failed to record banner order: %w", err)
	}

	return nil
}

func (r *RedisBannerRepository) GetByID(ctx context.Context, id domain.BannerID) (*domain.Banner, error) {
	data, err := r.client.Get(ctx, r.bannerKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banner from Redis: %w", err)
	}

	var b domain.Banner
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal banner: %w", err)
	}
	return &b, nil
}

func (r *RedisBannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	if _, err := r.GetByID(ctx, b.ID); err != nil {
		return err
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal banner: %w", err)
	}
	if err := r.client.Set(ctx, r.bannerKey(b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update banner in Redis: %w", err)
	}
	return nil
}

func (r *RedisBannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	ids, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list banner order: %w", err)
	}

	all := make([]*domain.Banner, 0, len(ids))
	for _, id := range ids {
		b, err := r.GetByID(ctx, domain.BannerID(id))
		if err == domain.ErrBannerNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, b)
	}
	return all, nil
}
