package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/internal/infrastructure/repositories/memory"
)

func newOverlayService() ports.OverlayService {
	return NewOverlayService(memory.NewMemoryBannerRepository())
}

func activeCount(t *testing.T, svc ports.OverlayService) int {
	t.Helper()
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, b := range all {
		if b.IsActive {
			n++
		}
	}
	return n
}

func TestOverlayService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := newOverlayService()

	_, err := svc.Submit(ctx, "   ", domain.BannerStatic)
	assert.ErrorIs(t, err, domain.ErrEmptyBannerText)

	_, err = svc.Submit(ctx, strings.Repeat("x", 281), domain.BannerStatic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid banner")
}

func TestOverlayService_SubmitTrimsAndDefaultsStyle(t *testing.T) {
	ctx := context.Background()
	svc := newOverlayService()

	b, err := svc.Submit(ctx, "  Welcome!  ", "marquee")
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", b.Text)
	assert.Equal(t, domain.BannerStatic, b.Style)
	assert.True(t, b.IsActive)

	b, err = svc.Submit(ctx, "Breaking", domain.BannerScrolling)
	require.NoError(t, err)
	assert.Equal(t, domain.BannerScrolling, b.Style)
}

func TestOverlayService_AtMostOneActive(t *testing.T) {
	ctx := context.Background()
	svc := newOverlayService()

	first, err := svc.Submit(ctx, "first", domain.BannerStatic)
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "second", domain.BannerStatic)
	require.NoError(t, err)

	assert.Equal(t, 1, activeCount(t, svc))
	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	// Activating the first displaces the second.
	_, err = svc.Toggle(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount(t, svc))
	active, err = svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func TestOverlayService_ToggleOffLeavesNoneActive(t *testing.T) {
	ctx := context.Background()
	svc := newOverlayService()

	b, err := svc.Submit(ctx, "hello", domain.BannerStatic)
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestOverlayService_ToggleUnknownBanner(t *testing.T) {
	ctx := context.Background()
	svc := newOverlayService()

	_, err := svc.Toggle(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrBannerNotFound)
}
