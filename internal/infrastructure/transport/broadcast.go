package transport

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/archive"
	"stagecast/pkg/circuitbreaker"
)

// SimulatedBroadcast stands in for the RTMP fan-out and recording backend.
// Finalization produces artifact references the way the real exporter would,
// without moving any bytes.
type SimulatedBroadcast struct {
	baseURL  string
	archiver *archive.Service
	logger   *zap.SugaredLogger

	// Guards the per-destination end-of-stream notification, which in a
	// real deployment is a remote call.
	breaker *circuitbreaker.CircuitBreaker
}

// NewSimulatedBroadcast creates the transport. archiver may be nil, in
// which case finished sessions are not archived.
func NewSimulatedBroadcast(baseURL string, archiver *archive.Service, logger *zap.SugaredLogger) *SimulatedBroadcast {
	return &SimulatedBroadcast{
		baseURL:  baseURL,
		archiver: archiver,
		logger:   logger,
		breaker:  circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

var _ ports.BroadcastTransport = (*SimulatedBroadcast)(nil)

// FinalizeSession closes out a finished session. When the session recorded,
// it returns references to the exported tracks: the mixed master plus one
// isolated video track per participant and the master audio.
func (t *SimulatedBroadcast) FinalizeSession(ctx context.Context, summary domain.SessionSummary) (*domain.RecordingArtifacts, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("finalize interrupted: %w", ctx.Err())
	default:
	}

	for _, destID := range summary.Destinations {
		err := t.breaker.Execute(ctx, func() error {
			return t.notifyStreamEnd(destID)
		})
		if err != nil {
			t.logger.Warnw("failed to notify destination of stream end",
				"destination_id", destID,
				"error", err,
			)
		}
	}

	t.logger.Infow("session finalized",
		"session_id", summary.SessionID,
		"duration", summary.Duration,
		"was_live", summary.WasLive,
		"was_recording", summary.WasRecording,
		"destinations", len(summary.Destinations),
	)

	var artifacts *domain.RecordingArtifacts
	if summary.WasRecording {
		artifacts = &domain.RecordingArtifacts{
			SessionID: summary.SessionID,
			Master: domain.ArtifactRef{
				Name: "master-broadcast.mp4",
				URI:  t.artifactURI(summary.SessionID, "master-broadcast.mp4"),
			},
		}
		for _, pid := range summary.Participants {
			name := fmt.Sprintf("%s-video.mp4", pid)
			artifacts.Tracks = append(artifacts.Tracks, domain.ArtifactRef{
				Name: name,
				URI:  t.artifactURI(summary.SessionID, name),
			})
		}
		artifacts.Tracks = append(artifacts.Tracks, domain.ArtifactRef{
			Name: "master-audio.wav",
			URI:  t.artifactURI(summary.SessionID, "master-audio.wav"),
		})
	}

	if t.archiver != nil {
		name, err := t.archiver.SaveRecord(ctx, archive.RecordOf(summary, artifacts))
		if err != nil {
			t.logger.Warnw("failed to archive session record", "error", err)
		} else {
			t.logger.Infow("session archived", "record", name)
		}
	}

	return artifacts, nil
}

// notifyStreamEnd tells one destination endpoint that the stream is over.
// The simulated endpoint always accepts.
func (t *SimulatedBroadcast) notifyStreamEnd(destID domain.DestinationID) error {
	t.logger.Debugw("stream end delivered", "destination_id", destID)
	return nil
}

func (t *SimulatedBroadcast) artifactURI(sessionID domain.SessionID, name string) string {
	return fmt.Sprintf("%s/recordings/%s/%s", t.baseURL, sessionID, name)
}
