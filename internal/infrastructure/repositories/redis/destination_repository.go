package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
)

// RedisDestinationRepository persists configured destinations so the
// operator's multistream setup survives a restart. Session history is
// never stored here; this is configuration only.
type RedisDestinationRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisDestinationRepository(client *redis.Client) ports.DestinationRepository {
	return &RedisDestinationRepository{
		client: client,
		prefix: "stagecast:dest:",
	}
}

func (r *RedisDestinationRepository) destKey(id domain.DestinationID) string {
	return r.prefix + string(id)
}

func (r *RedisDestinationRepository) orderKey() string {
	return r.prefix + "order"
}

func (r *RedisDestinationRepository) Add(ctx context.Context, d *domain.Destination) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal destination: %w", err)
	}

	if err := r.client.Set(ctx, r.destKey(d.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set destination in Redis: %w", err)
	}

	// Insertion order is kept in a list so List() is deterministic.
	if err := r.client.RPush(ctx, r.orderKey(), string(d.ID)).Err(); err != nil {
		return fmt.Errorf("failed to record destination order: %w", err)
	}

	return nil
}

func (r *RedisDestinationRepository) GetByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	data, err := r.client.Get(ctx, r.destKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrDestinationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get destination from Redis: %w", err)
	}

	var d domain.Destination
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal destination: %w", err)
	}
	return &d, nil
}

func (r *RedisDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	if _, err := r.GetByID(ctx, d.ID); err != nil {
		return err
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal destination: %w", err)
	}
	if err := r.client.Set(ctx, r.destKey(d.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update destination in Redis: %w", err)
	}
	return nil
}

func (r *RedisDestinationRepository) Remove(ctx context.Context, id domain.DestinationID) error {
	deleted, err := r.client.Del(ctx, r.destKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete destination from Redis: %w", err)
	}
	if deleted == 0 {
		return domain.ErrDestinationNotFound
	}

	if err := r.client.LRem(ctx, r.orderKey(), 1, string(id)).Err(); err != nil {
		return fmt.Errorf("failed to remove destination from order: %w", err)
	}
	return nil
}

func (r *RedisDestinationRepository) List(ctx context.Context) ([]*domain.Destination, error) {
	ids, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list destination order: %w", err)
	}

	all := make([]*domain.Destination, 0, len(ids))
	for _, id := range ids {
		d, err := r.GetByID(ctx, domain.DestinationID(id))
		if err == domain.ErrDestinationNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, d)
	}
	return all, nil
}
