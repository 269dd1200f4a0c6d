package repositories

import (
	"context"

	"stagecast/internal/core/ports"
	"stagecast/internal/infrastructure/repositories/memory"
	redisrepo "stagecast/internal/infrastructure/repositories/redis"
	"stagecast/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RepositoryFactory creates repositories with fallback support
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	logger      *zap.SugaredLogger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.SugaredLogger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	// Try to connect to Redis if enabled
	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warnw("failed to connect to Redis, falling back to memory repositories",
				"error", err,
			)
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

// CreateParticipantRepository creates a participant repository.
// Participants are always in memory: they describe the live session,
// not durable configuration, and must not outlive a process restart.
func (f *RepositoryFactory) CreateParticipantRepository() ports.ParticipantRepository {
	return memory.NewMemoryParticipantRepository()
}

// CreateBannerRepository creates a banner repository (Redis or memory with fallback)
func (f *RepositoryFactory) CreateBannerRepository() ports.BannerRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisBannerRepository(f.redisClient)
	}
	return memory.NewMemoryBannerRepository()
}

// CreateDestinationRepository creates a destination repository (Redis or memory
// with fallback). The Redis variant is wrapped in a read-through cache because
// destinations are read on every view model build.
func (f *RepositoryFactory) CreateDestinationRepository() ports.DestinationRepository {
	if f.useRedis && f.redisClient != nil {
		return NewCachedDestinationRepository(redisrepo.NewRedisDestinationRepository(f.redisClient))
	}
	return memory.NewMemoryDestinationRepository()
}

// CreateChatRepository creates a chat repository (always memory)
func (f *RepositoryFactory) CreateChatRepository() ports.ChatRepository {
	return memory.NewMemoryChatRepository()
}

// Close closes Redis connection if used
func (f *RepositoryFactory) Close() error {
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

// HealthCheck checks Redis connection health
func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
