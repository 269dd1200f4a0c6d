package domain

import (
	"time"
)

type ParticipantID string
type BannerID string
type DestinationID string
type SessionID string

// MediaHandle is an opaque reference to an external capture resource.
// The core attaches, detaches and clears it without inspecting its content.
type MediaHandle string

const NoMediaHandle MediaHandle = ""

type ParticipantKind string

const (
	KindCamera ParticipantKind = "camera"
	KindScreen ParticipantKind = "screen"
)

type Participant struct {
	ID              ParticipantID
	DisplayName     string
	Kind            ParticipantKind
	IsLocal         bool
	OnStage         bool
	MediaHandle     MediaHandle
	Muted           bool
	VideoSuppressed bool
	JoinedAt        time.Time

	// Ordinal is assigned by the registry on insertion and breaks ties
	// when the compositor sorts the stage.
	Ordinal int
}

// HasMedia reports whether a capture resource is currently bound.
func (p *Participant) HasMedia() bool {
	return p.MediaHandle != NoMediaHandle
}

// IsLocalCamera reports whether this is the operator's primary feed.
// The registry keeps at most one such participant.
func (p *Participant) IsLocalCamera() bool {
	return p.IsLocal && p.Kind == KindCamera
}

// ParticipantDescriptor carries everything needed to create a participant.
// Initial stage membership is always stated explicitly by the caller.
type ParticipantDescriptor struct {
	ID          ParticipantID
	DisplayName string
	Kind        ParticipantKind
	IsLocal     bool
	OnStage     bool
}
