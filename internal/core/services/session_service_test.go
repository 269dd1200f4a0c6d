package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/internal/infrastructure/repositories/memory"
)

type fakeCapture struct {
	mu        sync.Mutex
	next      int
	err       error
	onAcquire func()
	released  []domain.MediaHandle
}

func (f *fakeCapture) Acquire(ctx context.Context, kind domain.ParticipantKind) (domain.MediaHandle, error) {
	if f.onAcquire != nil {
		f.onAcquire()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.NoMediaHandle, f.err
	}
	f.next++
	return domain.MediaHandle(fmt.Sprintf("handle-%d", f.next)), nil
}

func (f *fakeCapture) Release(handle domain.MediaHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, handle)
}

func (f *fakeCapture) releasedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.released)
}

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) FinalizeSession(ctx context.Context, summary domain.SessionSummary) (*domain.RecordingArtifacts, error) {
	args := m.Called(ctx, summary)
	if a := args.Get(0); a != nil {
		return a.(*domain.RecordingArtifacts), args.Error(1)
	}
	return nil, args.Error(1)
}

type controllerFixture struct {
	controller   ports.SessionController
	participants ports.ParticipantService
	destinations ports.DestinationService
	capture      *fakeCapture
	transport    *mockTransport
}

func newControllerFixture(t *testing.T) *controllerFixture {
	capture := &fakeCapture{}
	transport := &mockTransport{}
	transport.On("FinalizeSession", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	participants := NewParticipantService(memory.NewMemoryParticipantRepository())
	overlays := NewOverlayService(memory.NewMemoryBannerRepository())
	destinations := NewDestinationService(memory.NewMemoryDestinationRepository(), "studio")

	controller := NewSessionController(
		participants, overlays, destinations,
		capture, transport, nil,
		zaptest.NewLogger(t).Sugar(),
		SessionConfig{DefaultLayout: domain.LayoutGrid, BaseURL: "http://localhost:8080"},
	)

	return &controllerFixture{
		controller:   controller,
		participants: participants,
		destinations: destinations,
		capture:      capture,
		transport:    transport,
	}
}

func (f *controllerFixture) mode(t *testing.T) domain.SessionMode {
	vm, err := f.controller.GetViewModel(context.Background())
	require.NoError(t, err)
	return vm.Mode
}

func TestSessionController_TransitionTable(t *testing.T) {
	tests := []struct {
		name  string
		steps []func(f *controllerFixture) error
		want  domain.SessionMode
	}{
		{
			name:  "idle go live",
			steps: []func(f *controllerFixture) error{goLive},
			want:  domain.ModeLive,
		},
		{
			name:  "idle start recording",
			steps: []func(f *controllerFixture) error{startRecording},
			want:  domain.ModeRecording,
		},
		{
			name:  "recording go live",
			steps: []func(f *controllerFixture) error{startRecording, goLive},
			want:  domain.ModeLiveAndRecording,
		},
		{
			name:  "live start recording",
			steps: []func(f *controllerFixture) error{goLive, startRecording},
			want:  domain.ModeLiveAndRecording,
		},
		{
			name:  "recording stop recording",
			steps: []func(f *controllerFixture) error{startRecording, stopRecording},
			want:  domain.ModeIdle,
		},
		{
			name:  "live stop broadcast",
			steps: []func(f *controllerFixture) error{goLive, stopBroadcast},
			want:  domain.ModeIdle,
		},
		{
			name:  "live and recording stop broadcast",
			steps: []func(f *controllerFixture) error{goLive, startRecording, stopBroadcast},
			want:  domain.ModeRecording,
		},
		{
			name:  "live and recording stop recording",
			steps: []func(f *controllerFixture) error{goLive, startRecording, stopRecording},
			want:  domain.ModeLive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newControllerFixture(t)
			for _, step := range tt.steps {
				require.NoError(t, step(f))
			}
			assert.Equal(t, tt.want, f.mode(t))
		})
	}
}

func goLive(f *controllerFixture) error { return f.controller.GoLive(context.Background()) }

func stopBroadcast(f *controllerFixture) error {
	return f.controller.StopBroadcast(context.Background())
}

func startRecording(f *controllerFixture) error {
	return f.controller.StartRecording(context.Background())
}

func stopRecording(f *controllerFixture) error {
	return f.controller.StopRecording(context.Background())
}

func TestSessionController_UndefinedTransitionsRejected(t *testing.T) {
	tests := []struct {
		name  string
		setup []func(f *controllerFixture) error
		event func(f *controllerFixture) error
	}{
		{"stop broadcast while idle", nil, stopBroadcast},
		{"stop recording while idle", nil, stopRecording},
		{"go live while live", []func(f *controllerFixture) error{goLive}, goLive},
		{"start recording while recording", []func(f *controllerFixture) error{startRecording}, startRecording},
		{"go live while live and recording", []func(f *controllerFixture) error{goLive, startRecording}, goLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newControllerFixture(t)
			for _, step := range tt.setup {
				require.NoError(t, step(f))
			}
			before := f.mode(t)

			err := tt.event(f)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, before, f.mode(t), "rejected event must not change state")
		})
	}
}

func TestSessionController_ElapsedRunsAcrossModeChanges(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	f.controller.(*sessionService).now = func() time.Time { return current }

	require.NoError(t, f.controller.GoLive(ctx))

	current = base.Add(95 * time.Second)
	vm, err := f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 95, vm.ElapsedSeconds)
	assert.Equal(t, "01:35", vm.Elapsed)

	// Adding recording must not reset the counter.
	require.NoError(t, f.controller.StartRecording(ctx))
	current = base.Add(120 * time.Second)
	vm, err = f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, vm.ElapsedSeconds)

	// Dropping back to live keeps it running too.
	require.NoError(t, f.controller.StopRecording(ctx))
	current = base.Add(150 * time.Second)
	vm, err = f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, vm.ElapsedSeconds)

	// Only the return to idle resets.
	require.NoError(t, f.controller.StopBroadcast(ctx))
	vm, err = f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, vm.ElapsedSeconds)
	assert.Equal(t, "00:00", vm.Elapsed)
}

func TestSessionController_FinalizeExactlyOncePerReturnToIdle(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	require.NoError(t, f.controller.GoLive(ctx))
	require.NoError(t, f.controller.StartRecording(ctx))
	require.NoError(t, f.controller.StopBroadcast(ctx))
	f.transport.AssertNumberOfCalls(t, "FinalizeSession", 0)

	require.NoError(t, f.controller.StopRecording(ctx))
	f.transport.AssertNumberOfCalls(t, "FinalizeSession", 1)

	summary := f.transport.Calls[0].Arguments.Get(1).(domain.SessionSummary)
	assert.False(t, summary.WasLive, "session ended from recording mode")
	assert.True(t, summary.WasRecording)

	// A second session finalizes again.
	require.NoError(t, f.controller.GoLive(ctx))
	require.NoError(t, f.controller.StopBroadcast(ctx))
	f.transport.AssertNumberOfCalls(t, "FinalizeSession", 2)
}

func TestSessionController_FinalizeStoresArtifacts(t *testing.T) {
	ctx := context.Background()

	capture := &fakeCapture{}
	transport := &mockTransport{}
	artifacts := &domain.RecordingArtifacts{
		SessionID: "s1",
		Master:    domain.ArtifactRef{Name: "master-broadcast.mp4"},
	}
	transport.On("FinalizeSession", mock.Anything, mock.Anything).Return(artifacts, nil)

	controller := NewSessionController(
		NewParticipantService(memory.NewMemoryParticipantRepository()),
		NewOverlayService(memory.NewMemoryBannerRepository()),
		NewDestinationService(memory.NewMemoryDestinationRepository(), "studio"),
		capture, transport, nil,
		zaptest.NewLogger(t).Sugar(),
		SessionConfig{},
	)

	require.Nil(t, controller.LastArtifacts())

	require.NoError(t, controller.StartRecording(ctx))
	require.NoError(t, controller.StopRecording(ctx))

	got := controller.LastArtifacts()
	require.NotNil(t, got)
	assert.Equal(t, "master-broadcast.mp4", got.Master.Name)
}

func TestSessionController_FinalizeFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	capture := &fakeCapture{}
	transport := &mockTransport{}
	transport.On("FinalizeSession", mock.Anything, mock.Anything).Return(nil, errors.New("exporter offline"))

	controller := NewSessionController(
		NewParticipantService(memory.NewMemoryParticipantRepository()),
		NewOverlayService(memory.NewMemoryBannerRepository()),
		NewDestinationService(memory.NewMemoryDestinationRepository(), "studio"),
		capture, transport, nil,
		zaptest.NewLogger(t).Sugar(),
		SessionConfig{},
	)

	require.NoError(t, controller.GoLive(ctx))
	require.NoError(t, controller.StopBroadcast(ctx))

	vm, err := controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, vm.Mode)
}

func TestSessionController_GoLiveWithoutDestinationsWarns(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	require.NoError(t, f.controller.GoLive(ctx))

	vm, err := f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLive, vm.Mode)
	assert.Contains(t, vm.Warnings, "broadcast is live with no enabled destinations")

	// Enabling a destination clears the warning.
	_, err = f.controller.AddDestination(ctx, domain.PlatformYouTube, "", domain.Credentials{})
	require.NoError(t, err)
	vm, err = f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Empty(t, vm.Warnings)
}

func TestSessionController_StartLocalCamera(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	p, err := f.controller.StartLocalCamera(ctx, "Host")
	require.NoError(t, err)
	assert.True(t, p.IsLocalCamera())
	assert.True(t, p.OnStage)
	assert.True(t, p.HasMedia())

	// The operator's primary feed is unique.
	_, err = f.controller.StartLocalCamera(ctx, "Second Host")
	assert.ErrorIs(t, err, domain.ErrLocalCameraExists)
}

func TestSessionController_StartLocalCameraAcquisitionFailure(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)
	f.capture.err = errors.New("device busy")

	p, err := f.controller.StartLocalCamera(ctx, "Host")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAcquisitionFailed)

	// The record survives without media for operator retry.
	require.NotNil(t, p)
	got, err := f.participants.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.HasMedia())

	vm, err := f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Contains(t, vm.Warnings, "camera acquisition failed")
}

func TestSessionController_RemovedWhilePendingDiscardsHandle(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	// Remove the freshly created record from inside the acquisition, which
	// simulates the operator removing the participant while the external
	// provider is still resolving.
	f.capture.onAcquire = func() {
		all, err := f.participants.List(ctx)
		require.NoError(t, err)
		for _, p := range all {
			require.NoError(t, f.participants.Remove(ctx, p.ID))
		}
	}

	_, err := f.controller.StartLocalCamera(ctx, "Host")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
	assert.Equal(t, 1, f.capture.releasedCount(), "late handle must be released")
}

func TestSessionController_ScreenShareSwitchesLayout(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	_, err := f.controller.StartLocalCamera(ctx, "Host")
	require.NoError(t, err)

	share, err := f.controller.StartScreenShare(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.KindScreen, share.Kind)
	assert.Equal(t, "Presentation", share.DisplayName)

	vm, err := f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutSidebar, vm.Layout)
	require.NotEmpty(t, vm.Slots)
	assert.Equal(t, domain.RolePrimary, vm.Slots[0].Role)
	assert.Equal(t, share.ID, vm.Slots[0].Participant.ID)
}

func TestSessionController_EndScreenShare(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	share, err := f.controller.StartScreenShare(ctx, "Deck")
	require.NoError(t, err)

	require.NoError(t, f.controller.EndScreenShare(ctx, share.ID))
	assert.Equal(t, 1, f.capture.releasedCount())

	// Ending twice is not an error: the resource ending and the operator
	// stopping the share may race.
	require.NoError(t, f.controller.EndScreenShare(ctx, share.ID))
	assert.Equal(t, 1, f.capture.releasedCount())

	all, err := f.participants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessionController_EndScreenShareRejectsCameraParticipant(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	p, err := f.controller.AddGuest(ctx, "Alice", true)
	require.NoError(t, err)

	err = f.controller.EndScreenShare(ctx, p.ID)
	require.Error(t, err)

	// The guest is untouched.
	_, err = f.participants.Get(ctx, p.ID)
	assert.NoError(t, err)
}

func TestSessionController_RemoveParticipantReleasesMedia(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	p, err := f.controller.AddGuest(ctx, "Alice", true)
	require.NoError(t, err)
	require.True(t, p.HasMedia())

	require.NoError(t, f.controller.RemoveParticipant(ctx, p.ID))
	assert.Equal(t, 1, f.capture.releasedCount())

	// Removing again is idempotent.
	require.NoError(t, f.controller.RemoveParticipant(ctx, p.ID))
}

func TestSessionController_SetLayoutValidation(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	require.NoError(t, f.controller.SetLayout(ctx, domain.LayoutSpotlight))
	vm, err := f.controller.GetViewModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutSpotlight, vm.Layout)

	assert.Error(t, f.controller.SetLayout(ctx, "cinema"))
}

func TestSessionController_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	settings := f.controller.Settings(ctx)
	settings.Resolution = domain.Resolution720p
	settings.MirrorVideo = false
	require.NoError(t, f.controller.UpdateSettings(ctx, settings))

	got := f.controller.Settings(ctx)
	assert.Equal(t, domain.Resolution720p, got.Resolution)
	assert.False(t, got.MirrorVideo)

	settings.Resolution = "8k"
	assert.Error(t, f.controller.UpdateSettings(ctx, settings))
}

func TestSessionController_SubscribePublishesOnMutation(t *testing.T) {
	ctx := context.Background()
	f := newControllerFixture(t)

	updates, cancel := f.controller.Subscribe()
	defer cancel()

	require.NoError(t, f.controller.GoLive(ctx))

	select {
	case vm := <-updates:
		assert.Equal(t, domain.ModeLive, vm.Mode)
	case <-time.After(time.Second):
		t.Fatal("expected a view model update after going live")
	}

	cancel()
	_, open := <-updates
	assert.False(t, open, "cancel closes the update channel")
}

func TestSessionController_InviteLink(t *testing.T) {
	f := newControllerFixture(t)

	link := f.controller.InviteLink()
	assert.Contains(t, link, "http://localhost:8080/join/")
}
