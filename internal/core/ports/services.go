package ports

import (
	"context"

	"stagecast/internal/core/domain"
)

type ParticipantService interface {
	Add(ctx context.Context, desc domain.ParticipantDescriptor) (*domain.Participant, error)
	Remove(ctx context.Context, id domain.ParticipantID) error
	SetStageMembership(ctx context.Context, id domain.ParticipantID, onStage bool) error
	SetMuted(ctx context.Context, id domain.ParticipantID, muted bool) error
	SetVideoSuppressed(ctx context.Context, id domain.ParticipantID, suppressed bool) error
	AttachMedia(ctx context.Context, id domain.ParticipantID, handle domain.MediaHandle) (bool, error)
	DetachMedia(ctx context.Context, id domain.ParticipantID) (domain.MediaHandle, error)
	Get(ctx context.Context, id domain.ParticipantID) (*domain.Participant, error)
	List(ctx context.Context) ([]*domain.Participant, error)
	LocalCamera(ctx context.Context) (*domain.Participant, error)
}

type OverlayService interface {
	Submit(ctx context.Context, text string, style domain.BannerStyle) (*domain.Banner, error)
	Toggle(ctx context.Context, id domain.BannerID) (*domain.Banner, error)
	Active(ctx context.Context) (*domain.Banner, error)
	List(ctx context.Context) ([]*domain.Banner, error)
}

type DestinationService interface {
	Add(ctx context.Context, platform domain.Platform, displayName string, creds domain.Credentials) (*domain.Destination, error)
	ToggleEnabled(ctx context.Context, id domain.DestinationID) (*domain.Destination, error)
	Remove(ctx context.Context, id domain.DestinationID) error
	List(ctx context.Context) ([]*domain.Destination, error)
	ListEnabled(ctx context.Context) ([]*domain.Destination, error)
	ShareLinks(ctx context.Context) ([]ShareLink, error)
}

// ShareLink is a public watch URL for one enabled destination.
type ShareLink struct {
	DestinationID domain.DestinationID `json:"destination_id"`
	Platform      domain.Platform      `json:"platform"`
	DisplayName   string               `json:"display_name"`
	URL           string               `json:"url"`
}

type ChatService interface {
	Post(ctx context.Context, sender, text string) (*domain.ChatMessage, error)
	List(ctx context.Context) ([]*domain.ChatMessage, error)
}

// SessionController is the top-level facade the operator surface talks to.
// Every mutation recomposes the view model and notifies subscribers.
type SessionController interface {
	// State machine.
	GoLive(ctx context.Context) error
	StopBroadcast(ctx context.Context) error
	StartRecording(ctx context.Context) error
	StopRecording(ctx context.Context) error

	// Stage and layout.
	SetLayout(ctx context.Context, layout domain.LayoutMode) error
	ToggleStage(ctx context.Context, id domain.ParticipantID) error
	ToggleMute(ctx context.Context, id domain.ParticipantID) error
	ToggleVideo(ctx context.Context, id domain.ParticipantID) error

	// Capture bridging.
	StartLocalCamera(ctx context.Context, displayName string) (*domain.Participant, error)
	StartScreenShare(ctx context.Context, displayName string) (*domain.Participant, error)
	EndScreenShare(ctx context.Context, id domain.ParticipantID) error
	AddGuest(ctx context.Context, displayName string, onStage bool) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, id domain.ParticipantID) error

	// Overlay and destination intents routed through the controller so the
	// view model is republished after each mutation.
	SubmitBanner(ctx context.Context, text string, style domain.BannerStyle) (*domain.Banner, error)
	ToggleBanner(ctx context.Context, id domain.BannerID) (*domain.Banner, error)
	AddDestination(ctx context.Context, platform domain.Platform, displayName string, creds domain.Credentials) (*domain.Destination, error)
	ToggleDestination(ctx context.Context, id domain.DestinationID) (*domain.Destination, error)
	RemoveDestination(ctx context.Context, id domain.DestinationID) error

	// Settings.
	Settings(ctx context.Context) domain.StudioSettings
	UpdateSettings(ctx context.Context, settings domain.StudioSettings) error

	// Composed state.
	GetViewModel(ctx context.Context) (domain.ViewModel, error)
	Subscribe() (<-chan domain.ViewModel, func())
	InviteLink() string
	LastArtifacts() *domain.RecordingArtifacts
}
