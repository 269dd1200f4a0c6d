package ports

import (
	"context"

	"stagecast/internal/core/domain"
)

type ParticipantRepository interface {
	Add(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id domain.ParticipantID) (*domain.Participant, error)
	Update(ctx context.Context, p *domain.Participant) error
	Remove(ctx context.Context, id domain.ParticipantID) error
	// List returns participants in insertion order.
	List(ctx context.Context) ([]*domain.Participant, error)
}

type BannerRepository interface {
	Add(ctx context.Context, b *domain.Banner) error
	GetByID(ctx context.Context, id domain.BannerID) (*domain.Banner, error)
	Update(ctx context.Context, b *domain.Banner) error
	// List returns banners in insertion order.
	List(ctx context.Context) ([]*domain.Banner, error)
}

type DestinationRepository interface {
	Add(ctx context.Context, d *domain.Destination) error
	GetByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error)
	Update(ctx context.Context, d *domain.Destination) error
	Remove(ctx context.Context, id domain.DestinationID) error
	// List returns destinations in insertion order.
	List(ctx context.Context) ([]*domain.Destination, error)
}

type ChatRepository interface {
	Append(ctx context.Context, m *domain.ChatMessage) error
	// List returns messages in insertion order.
	List(ctx context.Context) ([]*domain.ChatMessage, error)
}
