package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/utils"
)

// SessionConfig carries the operator-facing defaults for a session.
type SessionConfig struct {
	DefaultLayout domain.LayoutMode
	BaseURL       string
	Settings      domain.StudioSettings
}

type transitionKey struct {
	from  domain.SessionMode
	event domain.SessionEvent
}

// transitions is the complete table of defined (state, event) pairs.
// Anything not listed is rejected without side effects.
var transitions = map[transitionKey]domain.SessionMode{
	{domain.ModeIdle, domain.EventGoLive}:                    domain.ModeLive,
	{domain.ModeIdle, domain.EventStartRecording}:            domain.ModeRecording,
	{domain.ModeRecording, domain.EventGoLive}:               domain.ModeLiveAndRecording,
	{domain.ModeLive, domain.EventStartRecording}:            domain.ModeLiveAndRecording,
	{domain.ModeRecording, domain.EventStopRecording}:        domain.ModeIdle,
	{domain.ModeLive, domain.EventStopBroadcast}:             domain.ModeIdle,
	{domain.ModeLiveAndRecording, domain.EventStopBroadcast}: domain.ModeRecording,
	{domain.ModeLiveAndRecording, domain.EventStopRecording}: domain.ModeLive,
}

type sessionService struct {
	participants ports.ParticipantService
	overlays     ports.OverlayService
	destinations ports.DestinationService
	capture      ports.CaptureProvider
	transport    ports.BroadcastTransport
	metrics      ports.MetricsSink
	logger       *zap.SugaredLogger

	now func() time.Time

	mu             sync.Mutex
	sessionID      domain.SessionID
	mode           domain.SessionMode
	layout         domain.LayoutMode
	settings       domain.StudioSettings
	activeSince    time.Time
	captureWarning string
	lastArtifacts  *domain.RecordingArtifacts
	baseURL        string

	subMu sync.Mutex
	subs  map[chan domain.ViewModel]struct{}
}

func NewSessionController(
	participants ports.ParticipantService,
	overlays ports.OverlayService,
	destinations ports.DestinationService,
	capture ports.CaptureProvider,
	transport ports.BroadcastTransport,
	metrics ports.MetricsSink,
	logger *zap.SugaredLogger,
	cfg SessionConfig,
) ports.SessionController {
	layout := cfg.DefaultLayout
	if !domain.ValidLayout(layout) {
		layout = domain.LayoutGrid
	}
	settings := cfg.Settings
	if settings == (domain.StudioSettings{}) {
		settings = domain.DefaultStudioSettings()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &sessionService{
		participants: participants,
		overlays:     overlays,
		destinations: destinations,
		capture:      capture,
		transport:    transport,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
		sessionID:    domain.SessionID(utils.GenerateSessionID()),
		mode:         domain.ModeIdle,
		layout:       layout,
		settings:     settings,
		baseURL:      cfg.BaseURL,
		subs:         make(map[chan domain.ViewModel]struct{}),
	}
}

// --- State machine ---

func (s *sessionService) GoLive(ctx context.Context) error {
	// Zero enabled destinations does not block going live, it only
	// surfaces a warning through the view model.
	enabled, err := s.destinations.ListEnabled(ctx)
	if err == nil && len(enabled) == 0 {
		s.logger.Warnw("going live with no enabled destinations", "session_id", s.sessionID)
	}
	return s.apply(ctx, domain.EventGoLive)
}

func (s *sessionService) StopBroadcast(ctx context.Context) error {
	return s.apply(ctx, domain.EventStopBroadcast)
}

func (s *sessionService) StartRecording(ctx context.Context) error {
	return s.apply(ctx, domain.EventStartRecording)
}

func (s *sessionService) StopRecording(ctx context.Context) error {
	return s.apply(ctx, domain.EventStopRecording)
}

func (s *sessionService) apply(ctx context.Context, event domain.SessionEvent) error {
	s.mu.Lock()

	from := s.mode
	next, ok := transitions[transitionKey{from: from, event: event}]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s while %s", domain.ErrInvalidTransition, event, from)
	}

	s.mode = next

	switch {
	case from == domain.ModeIdle:
		// Entering an active session: the elapsed counter starts here and
		// keeps running across live/recording combinations.
		s.activeSince = s.now()
	case next == domain.ModeIdle:
		duration := s.now().Sub(s.activeSince)
		s.activeSince = time.Time{}
		s.mu.Unlock()

		s.finalize(ctx, from, duration)

		s.logger.Infow("session transition",
			"session_id", s.sessionID, "from", from, "event", event, "to", next)
		s.metrics.SessionModeChanged(next)
		s.publish(ctx)
		return nil
	}

	s.mu.Unlock()

	s.logger.Infow("session transition",
		"session_id", s.sessionID, "from", from, "event", event, "to", next)
	if event == domain.EventGoLive {
		s.metrics.BroadcastStarted()
	}
	if event == domain.EventStartRecording {
		s.metrics.RecordingStarted()
	}
	s.metrics.SessionModeChanged(next)
	s.publish(ctx)
	return nil
}

// finalize notifies the broadcast transport exactly once per return to
// idle. Transport failure is logged, never fatal to the session.
func (s *sessionService) finalize(ctx context.Context, from domain.SessionMode, duration time.Duration) {
	summary := domain.SessionSummary{
		SessionID:    s.sessionID,
		Duration:     duration,
		WasLive:      from.Live(),
		WasRecording: from.Recording(),
		EndedAt:      s.now(),
	}
	if all, err := s.participants.List(ctx); err == nil {
		for _, p := range all {
			summary.Participants = append(summary.Participants, p.ID)
		}
	}
	if enabled, err := s.destinations.ListEnabled(ctx); err == nil {
		for _, d := range enabled {
			summary.Destinations = append(summary.Destinations, d.ID)
		}
	}

	artifacts, err := s.transport.FinalizeSession(ctx, summary)
	if err != nil {
		s.logger.Errorw("session finalize failed", "session_id", s.sessionID, "error", err)
	} else if artifacts != nil {
		s.mu.Lock()
		s.lastArtifacts = artifacts
		s.mu.Unlock()
	}
	s.metrics.SessionFinalized(duration)
}

// --- Stage and layout ---

func (s *sessionService) SetLayout(ctx context.Context, layout domain.LayoutMode) error {
	if !domain.ValidLayout(layout) {
		return fmt.Errorf("unknown layout %q", layout)
	}
	s.mu.Lock()
	s.layout = layout
	s.mu.Unlock()
	s.publish(ctx)
	return nil
}

func (s *sessionService) ToggleStage(ctx context.Context, id domain.ParticipantID) error {
	p, err := s.participants.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.participants.SetStageMembership(ctx, id, !p.OnStage); err != nil {
		return err
	}
	s.reportStage(ctx)
	s.publish(ctx)
	return nil
}

func (s *sessionService) ToggleMute(ctx context.Context, id domain.ParticipantID) error {
	p, err := s.participants.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.participants.SetMuted(ctx, id, !p.Muted); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func (s *sessionService) ToggleVideo(ctx context.Context, id domain.ParticipantID) error {
	p, err := s.participants.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.participants.SetVideoSuppressed(ctx, id, !p.VideoSuppressed); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// --- Capture bridging ---

// StartLocalCamera creates the operator's primary feed and binds a capture
// handle to it. The record is created first with no handle; if acquisition
// fails the record stays in that state and the failure is surfaced for
// operator retry.
func (s *sessionService) StartLocalCamera(ctx context.Context, displayName string) (*domain.Participant, error) {
	p, err := s.participants.Add(ctx, domain.ParticipantDescriptor{
		ID:          domain.ParticipantID(utils.GenerateParticipantID()),
		DisplayName: displayName,
		Kind:        domain.KindCamera,
		IsLocal:     true,
		OnStage:     true,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx)

	handle, err := s.capture.Acquire(ctx, domain.KindCamera)
	if err != nil {
		s.noteCaptureFailure("camera acquisition failed")
		s.publish(ctx)
		return p, fmt.Errorf("%w: %v", domain.ErrAcquisitionFailed, err)
	}

	attached, err := s.participants.AttachMedia(ctx, p.ID, handle)
	if err != nil {
		s.capture.Release(handle)
		return nil, err
	}
	if !attached {
		// The record was removed while acquisition was pending; the late
		// resolution is discarded.
		s.capture.Release(handle)
		return nil, domain.ErrParticipantNotFound
	}

	s.clearCaptureFailure()
	s.publish(ctx)
	return s.participants.Get(ctx, p.ID)
}

// StartScreenShare acquires a screen capture, creates the share-scoped
// participant on stage, and auto-switches the layout to sidebar so the
// screen content takes the primary slot.
func (s *sessionService) StartScreenShare(ctx context.Context, displayName string) (*domain.Participant, error) {
	if displayName == "" {
		displayName = "Presentation"
	}

	handle, err := s.capture.Acquire(ctx, domain.KindScreen)
	if err != nil {
		s.noteCaptureFailure("screen capture acquisition failed")
		s.publish(ctx)
		return nil, fmt.Errorf("%w: %v", domain.ErrAcquisitionFailed, err)
	}

	p, err := s.participants.Add(ctx, domain.ParticipantDescriptor{
		ID:          domain.ParticipantID(utils.GenerateShareID()),
		DisplayName: displayName,
		Kind:        domain.KindScreen,
		IsLocal:     true,
		OnStage:     true,
	})
	if err != nil {
		s.capture.Release(handle)
		return nil, err
	}
	if _, err := s.participants.AttachMedia(ctx, p.ID, handle); err != nil {
		s.capture.Release(handle)
		return nil, err
	}

	s.mu.Lock()
	if s.layout != domain.LayoutSidebar {
		s.layout = domain.LayoutSidebar
	}
	s.mu.Unlock()

	s.clearCaptureFailure()
	s.metrics.ScreenShareStarted()
	s.reportStage(ctx)
	s.publish(ctx)
	return s.participants.Get(ctx, p.ID)
}

// EndScreenShare removes exactly the participant record created for the
// share. It is idempotent: the capture resource ending and the operator
// stopping the share may race.
func (s *sessionService) EndScreenShare(ctx context.Context, id domain.ParticipantID) error {
	p, err := s.participants.Get(ctx, id)
	if err != nil {
		// Already gone: the share was stopped from the other side.
		return nil
	}
	if p.Kind != domain.KindScreen {
		return fmt.Errorf("participant %s is not a screen share", id)
	}

	if handle, err := s.participants.DetachMedia(ctx, id); err == nil && handle != domain.NoMediaHandle {
		s.capture.Release(handle)
	}
	if err := s.participants.Remove(ctx, id); err != nil {
		return err
	}
	s.reportStage(ctx)
	s.publish(ctx)
	return nil
}

// AddGuest registers a remote guest joining the session. Stage membership
// is stated explicitly by the caller; guests never default silently.
func (s *sessionService) AddGuest(ctx context.Context, displayName string, onStage bool) (*domain.Participant, error) {
	p, err := s.participants.Add(ctx, domain.ParticipantDescriptor{
		ID:          domain.ParticipantID(utils.GenerateParticipantID()),
		DisplayName: displayName,
		Kind:        domain.KindCamera,
		IsLocal:     false,
		OnStage:     onStage,
	})
	if err != nil {
		return nil, err
	}

	// Guest media arrives through the capture boundary like any other
	// stream; failure leaves the guest without a handle, never blocks join.
	if handle, err := s.capture.Acquire(ctx, domain.KindCamera); err == nil {
		if attached, _ := s.participants.AttachMedia(ctx, p.ID, handle); !attached {
			s.capture.Release(handle)
		}
	} else {
		s.logger.Warnw("guest media acquisition failed", "participant_id", p.ID, "error", err)
	}

	s.reportStage(ctx)
	s.publish(ctx)
	return s.participants.Get(ctx, p.ID)
}

func (s *sessionService) RemoveParticipant(ctx context.Context, id domain.ParticipantID) error {
	if handle, err := s.participants.DetachMedia(ctx, id); err == nil && handle != domain.NoMediaHandle {
		s.capture.Release(handle)
	}
	if err := s.participants.Remove(ctx, id); err != nil {
		return err
	}
	s.reportStage(ctx)
	s.publish(ctx)
	return nil
}

// --- Overlay and destination intents ---

func (s *sessionService) SubmitBanner(ctx context.Context, text string, style domain.BannerStyle) (*domain.Banner, error) {
	b, err := s.overlays.Submit(ctx, text, style)
	if err != nil {
		return nil, err
	}
	s.metrics.BannerSubmitted()
	s.publish(ctx)
	return b, nil
}

func (s *sessionService) ToggleBanner(ctx context.Context, id domain.BannerID) (*domain.Banner, error) {
	b, err := s.overlays.Toggle(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx)
	return b, nil
}

func (s *sessionService) AddDestination(ctx context.Context, platform domain.Platform, displayName string, creds domain.Credentials) (*domain.Destination, error) {
	d, err := s.destinations.Add(ctx, platform, displayName, creds)
	if err != nil {
		return nil, err
	}
	s.reportDestinations(ctx)
	s.publish(ctx)
	return d, nil
}

func (s *sessionService) ToggleDestination(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	d, err := s.destinations.ToggleEnabled(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reportDestinations(ctx)
	s.publish(ctx)
	return d, nil
}

func (s *sessionService) RemoveDestination(ctx context.Context, id domain.DestinationID) error {
	if err := s.destinations.Remove(ctx, id); err != nil {
		return err
	}
	s.reportDestinations(ctx)
	s.publish(ctx)
	return nil
}

// --- Settings ---

func (s *sessionService) Settings(ctx context.Context) domain.StudioSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *sessionService) UpdateSettings(ctx context.Context, settings domain.StudioSettings) error {
	if !domain.ValidResolution(settings.Resolution) {
		return fmt.Errorf("unknown resolution %q", settings.Resolution)
	}
	if !domain.ValidFrameRate(settings.FrameRate) {
		return fmt.Errorf("unknown frame rate %q", settings.FrameRate)
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.publish(ctx)
	return nil
}

// --- Composed state ---

func (s *sessionService) GetViewModel(ctx context.Context) (domain.ViewModel, error) {
	all, err := s.participants.List(ctx)
	if err != nil {
		return domain.ViewModel{}, err
	}
	active, err := s.overlays.Active(ctx)
	if err != nil {
		return domain.ViewModel{}, err
	}
	enabled, err := s.destinations.ListEnabled(ctx)
	if err != nil {
		return domain.ViewModel{}, err
	}

	s.mu.Lock()
	mode := s.mode
	layout := s.layout
	settings := s.settings
	sessionID := s.sessionID
	captureWarning := s.captureWarning
	var elapsed int
	if mode != domain.ModeIdle {
		elapsed = int(s.now().Sub(s.activeSince) / time.Second)
	}
	s.mu.Unlock()

	slots := Compose(all, layout)
	vm := domain.ViewModel{
		SessionID:      sessionID,
		Mode:           mode,
		ElapsedSeconds: elapsed,
		Elapsed:        utils.FormatElapsed(elapsed),
		Layout:         layout,
		GridColumns:    domain.GridColumns(len(slots)),
		Slots:          make([]domain.SlotView, 0, len(slots)),
		ActiveBanner:   domain.BannerViewOf(active),
		Destinations:   make([]domain.DestView, 0, len(enabled)),
		Settings:       settings,
		Participants:   make([]domain.ParticipantView, 0, len(all)),
	}
	for _, slot := range slots {
		vm.Slots = append(vm.Slots, domain.SlotView{
			Role:        slot.Role,
			Participant: domain.ViewOf(slot.Participant),
		})
	}
	for _, d := range enabled {
		vm.Destinations = append(vm.Destinations, domain.DestViewOf(d))
	}
	for _, p := range all {
		vm.Participants = append(vm.Participants, domain.ViewOf(p))
	}

	if mode.Live() && len(enabled) == 0 {
		vm.Warnings = append(vm.Warnings, "broadcast is live with no enabled destinations")
	}
	if captureWarning != "" {
		vm.Warnings = append(vm.Warnings, captureWarning)
	}
	return vm, nil
}

// Subscribe registers a change-notification channel. The returned cancel
// func must be called to stop receiving updates.
func (s *sessionService) Subscribe() (<-chan domain.ViewModel, func()) {
	ch := make(chan domain.ViewModel, 8)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *sessionService) InviteLink() string {
	return fmt.Sprintf("%s/join/%s", s.baseURL, s.sessionID)
}

func (s *sessionService) LastArtifacts() *domain.RecordingArtifacts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastArtifacts
}

// publish recomposes the view model and hands it to every subscriber.
// Slow subscribers miss intermediate states rather than blocking mutations.
func (s *sessionService) publish(ctx context.Context) {
	vm, err := s.GetViewModel(ctx)
	if err != nil {
		s.logger.Errorw("view model composition failed", "error", err)
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- vm:
		default:
		}
	}
}

func (s *sessionService) noteCaptureFailure(msg string) {
	s.metrics.AcquisitionFailed()
	s.mu.Lock()
	s.captureWarning = msg
	s.mu.Unlock()
}

func (s *sessionService) clearCaptureFailure() {
	s.mu.Lock()
	s.captureWarning = ""
	s.mu.Unlock()
}

func (s *sessionService) reportStage(ctx context.Context) {
	all, err := s.participants.List(ctx)
	if err != nil {
		return
	}
	onStage := 0
	for _, p := range all {
		if p.OnStage {
			onStage++
		}
	}
	s.metrics.StageChanged(onStage)
}

func (s *sessionService) reportDestinations(ctx context.Context) {
	enabled, err := s.destinations.ListEnabled(ctx)
	if err != nil {
		return
	}
	s.metrics.DestinationsChanged(len(enabled))
}

// NopMetrics discards all metric events.
type NopMetrics struct{}

func (NopMetrics) SessionModeChanged(domain.SessionMode) {}
func (NopMetrics) BroadcastStarted()                     {}
func (NopMetrics) RecordingStarted()                     {}
func (NopMetrics) SessionFinalized(time.Duration)        {}
func (NopMetrics) ScreenShareStarted()                   {}
func (NopMetrics) BannerSubmitted()                      {}
func (NopMetrics) StageChanged(int)                      {}
func (NopMetrics) DestinationsChanged(int)               {}
func (NopMetrics) AcquisitionFailed()                    {}
