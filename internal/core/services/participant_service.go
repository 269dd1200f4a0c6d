package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/validation"
)

type participantService struct {
	repo ports.ParticipantRepository
}

func NewParticipantService(repo ports.ParticipantRepository) ports.ParticipantService {
	return &participantService{repo: repo}
}

func (s *participantService) Add(ctx context.Context, desc domain.ParticipantDescriptor) (*domain.Participant, error) {
	if err := validation.ValidateDisplayName(desc.DisplayName); err != nil {
		return nil, fmt.Errorf("invalid participant: %w", err)
	}

	// The operator's primary feed is unique: at most one local camera
	// participant may exist at any time.
	if desc.IsLocal && desc.Kind == domain.KindCamera {
		if _, err := s.LocalCamera(ctx); err == nil {
			return nil, domain.ErrLocalCameraExists
		}
	}

	p := &domain.Participant{
		ID:          desc.ID,
		DisplayName: desc.DisplayName,
		Kind:        desc.Kind,
		IsLocal:     desc.IsLocal,
		OnStage:     desc.OnStage,
		MediaHandle: domain.NoMediaHandle,
		JoinedAt:    time.Now(),
	}

	if err := s.repo.Add(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove is idempotent: removal races with capture-resource end events, so
// a missing participant is not an error.
func (s *participantService) Remove(ctx context.Context, id domain.ParticipantID) error {
	err := s.repo.Remove(ctx, id)
	if errors.Is(err, domain.ErrParticipantNotFound) {
		return nil
	}
	return err
}

func (s *participantService) SetStageMembership(ctx context.Context, id domain.ParticipantID, onStage bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.OnStage = onStage
	return s.repo.Update(ctx, p)
}

func (s *participantService) SetMuted(ctx context.Context, id domain.ParticipantID, muted bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Muted = muted
	return s.repo.Update(ctx, p)
}

func (s *participantService) SetVideoSuppressed(ctx context.Context, id domain.ParticipantID, suppressed bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.VideoSuppressed = suppressed
	return s.repo.Update(ctx, p)
}

// AttachMedia binds a resolved capture handle to a participant. It returns
// false when the participant was removed while the acquisition was pending;
// the caller must then release the handle, since a late resolution never
// attaches to a deleted record.
func (s *participantService) AttachMedia(ctx context.Context, id domain.ParticipantID, handle domain.MediaHandle) (bool, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrParticipantNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	p.MediaHandle = handle
	if err := s.repo.Update(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// DetachMedia clears and returns the participant's handle so the caller can
// release it with the capture provider.
func (s *participantService) DetachMedia(ctx context.Context, id domain.ParticipantID) (domain.MediaHandle, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NoMediaHandle, err
	}
	handle := p.MediaHandle
	p.MediaHandle = domain.NoMediaHandle
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.NoMediaHandle, err
	}
	return handle, nil
}

func (s *participantService) Get(ctx context.Context, id domain.ParticipantID) (*domain.Participant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *participantService) List(ctx context.Context) ([]*domain.Participant, error) {
	return s.repo.List(ctx)
}

func (s *participantService) LocalCamera(ctx context.Context) (*domain.Participant, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.IsLocalCamera() {
			return p, nil
		}
	}
	return nil, domain.ErrParticipantNotFound
}
