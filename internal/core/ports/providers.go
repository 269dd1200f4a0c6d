package ports

import (
	"context"

	"stagecast/internal/core/domain"
)

// CaptureProvider supplies and revokes live capture resources. The core
// treats handles as opaque tokens; it never sees pixel or audio data.
type CaptureProvider interface {
	// Acquire requests a capture resource of the given kind. It may block
	// until the external provider resolves; cancellation goes through ctx.
	Acquire(ctx context.Context, kind domain.ParticipantKind) (domain.MediaHandle, error)
	Release(handle domain.MediaHandle)
}

// BroadcastTransport is the encoding/upload pipeline boundary. The core
// only notifies it when a session ends; transport mechanics are external.
type BroadcastTransport interface {
	FinalizeSession(ctx context.Context, summary domain.SessionSummary) (*domain.RecordingArtifacts, error)
}
