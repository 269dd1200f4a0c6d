package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/utils"
	"stagecast/pkg/validation"
)

type overlayService struct {
	repo ports.BannerRepository
}

func NewOverlayService(repo ports.BannerRepository) ports.OverlayService {
	return &overlayService{repo: repo}
}

// Submit creates a banner and makes it the sole active one. Deactivation of
// existing banners and activation of the new one happen before the caller
// observes any state, so at most one banner is ever active.
func (s *overlayService) Submit(ctx context.Context, text string, style domain.BannerStyle) (*domain.Banner, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyBannerText
	}
	if err := validation.ValidateBannerText(text); err != nil {
		return nil, fmt.Errorf("invalid banner: %w", err)
	}
	if style != domain.BannerScrolling {
		style = domain.BannerStatic
	}

	if err := s.deactivateAll(ctx); err != nil {
		return nil, err
	}

	b := &domain.Banner{
		ID:        domain.BannerID(utils.GenerateBannerID()),
		Text:      text,
		Style:     style,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Add(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Toggle is the sole activation surface: an inactive banner becomes the only
// active one; an active banner is switched off, leaving none active.
func (s *overlayService) Toggle(ctx context.Context, id domain.BannerID) (*domain.Banner, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.IsActive {
		b.IsActive = false
		if err := s.repo.Update(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := s.deactivateAll(ctx); err != nil {
		return nil, err
	}
	b.IsActive = true
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *overlayService) Active(ctx context.Context) (*domain.Banner, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.IsActive {
			return b, nil
		}
	}
	return nil, nil
}

func (s *overlayService) List(ctx context.Context) ([]*domain.Banner, error) {
	return s.repo.List(ctx)
}

func (s *overlayService) deactivateAll(ctx context.Context) error {
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range all {
		if b.IsActive {
			b.IsActive = false
			if err := s.repo.Update(ctx, b); err != nil {
				return err
			}
		}
	}
	return nil
}
