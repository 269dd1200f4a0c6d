package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/internal/infrastructure/repositories/memory"
)

func newParticipantService() ports.ParticipantService {
	return NewParticipantService(memory.NewMemoryParticipantRepository())
}

func camDescriptor(id string, local bool) domain.ParticipantDescriptor {
	return domain.ParticipantDescriptor{
		ID:          domain.ParticipantID(id),
		DisplayName: "Participant " + id,
		Kind:        domain.KindCamera,
		IsLocal:     local,
		OnStage:     true,
	}
}

func TestParticipantService_AddValidatesDisplayName(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	_, err := svc.Add(ctx, domain.ParticipantDescriptor{ID: "p1", DisplayName: "  ", Kind: domain.KindCamera})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display name is required")
}

func TestParticipantService_LocalCameraIsUnique(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	_, err := svc.Add(ctx, camDescriptor("p1", true))
	require.NoError(t, err)

	_, err = svc.Add(ctx, camDescriptor("p2", true))
	assert.ErrorIs(t, err, domain.ErrLocalCameraExists)

	// Remote cameras and local screen shares are unconstrained.
	_, err = svc.Add(ctx, camDescriptor("p3", false))
	assert.NoError(t, err)
	_, err = svc.Add(ctx, domain.ParticipantDescriptor{
		ID: "s1", DisplayName: "Deck", Kind: domain.KindScreen, IsLocal: true,
	})
	assert.NoError(t, err)
}

func TestParticipantService_LocalCameraLookup(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	_, err := svc.LocalCamera(ctx)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = svc.Add(ctx, camDescriptor("guest", false))
	require.NoError(t, err)
	_, err = svc.LocalCamera(ctx)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound, "remote cameras do not count")

	added, err := svc.Add(ctx, camDescriptor("host", true))
	require.NoError(t, err)

	got, err := svc.LocalCamera(ctx)
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
}

func TestParticipantService_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	p, err := svc.Add(ctx, camDescriptor("p1", false))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, p.ID))
	require.NoError(t, svc.Remove(ctx, p.ID))
	require.NoError(t, svc.Remove(ctx, "never-existed"))
}

func TestParticipantService_AttachMedia(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	p, err := svc.Add(ctx, camDescriptor("p1", false))
	require.NoError(t, err)
	assert.False(t, p.HasMedia())

	attached, err := svc.AttachMedia(ctx, p.ID, "handle-1")
	require.NoError(t, err)
	assert.True(t, attached)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MediaHandle("handle-1"), got.MediaHandle)
}

func TestParticipantService_AttachMediaToRemovedParticipant(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	attached, err := svc.AttachMedia(ctx, "gone", "handle-1")
	require.NoError(t, err, "a late resolution is not an error")
	assert.False(t, attached, "the caller must release the handle")
}

func TestParticipantService_DetachMedia(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	p, err := svc.Add(ctx, camDescriptor("p1", false))
	require.NoError(t, err)
	_, err = svc.AttachMedia(ctx, p.ID, "handle-1")
	require.NoError(t, err)

	handle, err := svc.DetachMedia(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MediaHandle("handle-1"), handle)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.HasMedia())

	_, err = svc.DetachMedia(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestParticipantService_StageMuteVideoFlags(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	p, err := svc.Add(ctx, camDescriptor("p1", false))
	require.NoError(t, err)

	require.NoError(t, svc.SetStageMembership(ctx, p.ID, false))
	require.NoError(t, svc.SetMuted(ctx, p.ID, true))
	require.NoError(t, svc.SetVideoSuppressed(ctx, p.ID, true))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.OnStage)
	assert.True(t, got.Muted)
	assert.True(t, got.VideoSuppressed)

	assert.ErrorIs(t, svc.SetMuted(ctx, "gone", true), domain.ErrParticipantNotFound)
}

func TestParticipantService_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newParticipantService()

	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.Add(ctx, camDescriptor(id, false))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ParticipantID("a"), all[0].ID)
	assert.Equal(t, domain.ParticipantID("b"), all[1].ID)
	assert.Equal(t, domain.ParticipantID("c"), all[2].ID)
}
