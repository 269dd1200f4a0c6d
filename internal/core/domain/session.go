package domain

import "time"

type SessionMode string

const (
	ModeIdle             SessionMode = "idle"
	ModeLive             SessionMode = "live"
	ModeRecording        SessionMode = "recording"
	ModeLiveAndRecording SessionMode = "live+recording"
)

// Live reports whether the broadcast output is being sent to destinations.
func (m SessionMode) Live() bool {
	return m == ModeLive || m == ModeLiveAndRecording
}

// Recording reports whether the session is being recorded.
func (m SessionMode) Recording() bool {
	return m == ModeRecording || m == ModeLiveAndRecording
}

// Idle reports whether neither broadcast nor recording is active.
func (m SessionMode) Idle() bool {
	return m == ModeIdle
}

// SessionEvent is an operator-triggered transition request.
type SessionEvent string

const (
	EventGoLive         SessionEvent = "go_live"
	EventStopBroadcast  SessionEvent = "stop_broadcast"
	EventStartRecording SessionEvent = "start_recording"
	EventStopRecording  SessionEvent = "stop_recording"
)

// SessionSummary describes a finished session, handed to the broadcast
// transport when the session returns to idle.
type SessionSummary struct {
	SessionID    SessionID
	Duration     time.Duration
	WasLive      bool
	WasRecording bool
	Participants []ParticipantID
	Destinations []DestinationID
	EndedAt      time.Time
}

// RecordingArtifacts are opaque references to exported session tracks.
// Handling of the references (download, storage) is outside the core.
type ArtifactRef struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type RecordingArtifacts struct {
	SessionID SessionID     `json:"session_id"`
	Master    ArtifactRef   `json:"master"`
	Tracks    []ArtifactRef `json:"tracks"`
}
