package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/utils"
	"stagecast/pkg/validation"
)

type destinationService struct {
	repo      ports.DestinationRepository
	shareSlug string
}

func NewDestinationService(repo ports.DestinationRepository, shareSlug string) ports.DestinationService {
	if shareSlug == "" {
		shareSlug = "studio"
	}
	return &destinationService{repo: repo, shareSlug: shareSlug}
}

// Add creates a destination with connected=true and enabled=true, matching
// the studio's auto-enable-on-add behavior. Custom targets must carry a
// valid RTMP URL and stream key.
func (s *destinationService) Add(ctx context.Context, platform domain.Platform, displayName string, creds domain.Credentials) (*domain.Destination, error) {
	if !domain.ValidPlatform(platform) {
		return nil, domain.ErrInvalidPlatform
	}

	if platform == domain.PlatformCustom {
		if err := validation.ValidateRTMPURL(creds.URL); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		if err := validation.ValidateStreamKey(creds.StreamKey); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
	}

	if strings.TrimSpace(displayName) == "" {
		displayName = defaultDestinationName(platform)
	}

	d := &domain.Destination{
		ID:          domain.DestinationID(utils.GenerateDestinationID()),
		Platform:    platform,
		DisplayName: displayName,
		Connected:   true,
		Enabled:     true,
		Credentials: creds,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Add(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ToggleEnabled flips the enabled flag. While live this affects the next
// broadcast start only; the running broadcast is untouched.
func (s *destinationService) ToggleEnabled(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Enabled {
		d.Enabled = false
	} else {
		// enabled implies connected
		if !d.Connected {
			d.Connected = true
		}
		d.Enabled = true
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *destinationService) Remove(ctx context.Context, id domain.DestinationID) error {
	return s.repo.Remove(ctx, id)
}

func (s *destinationService) List(ctx context.Context) ([]*domain.Destination, error) {
	return s.repo.List(ctx)
}

func (s *destinationService) ListEnabled(ctx context.Context) ([]*domain.Destination, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(d *domain.Destination, _ int) bool {
		return d.Enabled
	}), nil
}

// ShareLinks builds public watch URLs for every enabled destination.
func (s *destinationService) ShareLinks(ctx context.Context) ([]ports.ShareLink, error) {
	enabled, err := s.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(enabled, func(d *domain.Destination, _ int) ports.ShareLink {
		return ports.ShareLink{
			DestinationID: d.ID,
			Platform:      d.Platform,
			DisplayName:   d.DisplayName,
			URL:           s.watchURL(d),
		}
	}), nil
}

func (s *destinationService) watchURL(d *domain.Destination) string {
	if d.Platform == domain.PlatformCustom {
		return d.Credentials.URL
	}
	return fmt.Sprintf("https://%s.com/live/%s", d.Platform, s.shareSlug)
}

func defaultDestinationName(platform domain.Platform) string {
	if platform == domain.PlatformCustom {
		return "Custom RTMP"
	}
	name := string(platform)
	return strings.ToUpper(name[:1]) + name[1:] + " Channel"
}
