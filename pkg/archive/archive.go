package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"stagecast/internal/core/domain"
)

// SessionRecord is the archived trace of one finished session.
type SessionRecord struct {
	SessionID    domain.SessionID           `json:"session_id"`
	Duration     time.Duration              `json:"duration"`
	WasLive      bool                       `json:"was_live"`
	WasRecording bool                       `json:"was_recording"`
	Participants []domain.ParticipantID     `json:"participants,omitempty"`
	Destinations []domain.DestinationID     `json:"destinations,omitempty"`
	EndedAt      time.Time                  `json:"ended_at"`
	Artifacts    *domain.RecordingArtifacts `json:"artifacts,omitempty"`
}

// Storage defines where session records are kept.
type Storage interface {
	Save(ctx context.Context, name string, data io.Reader) error
	Load(ctx context.Context, name string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Service archives finished sessions.
type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// RecordOf builds a session record from a summary and its artifacts.
func RecordOf(summary domain.SessionSummary, artifacts *domain.RecordingArtifacts) *SessionRecord {
	return &SessionRecord{
		SessionID:    summary.SessionID,
		Duration:     summary.Duration,
		WasLive:      summary.WasLive,
		WasRecording: summary.WasRecording,
		Participants: summary.Participants,
		Destinations: summary.Destinations,
		EndedAt:      summary.EndedAt,
		Artifacts:    artifacts,
	}
}

// SaveRecord writes one session record and returns its storage name.
func (s *Service) SaveRecord(ctx context.Context, record *SessionRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session record: %w", err)
	}

	name := fmt.Sprintf("session-%s-%s.json",
		record.EndedAt.Format("20060102-150405"), record.SessionID)

	if err := s.storage.Save(ctx, name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to save session record: %w", err)
	}

	return name, nil
}

// LoadRecord reads one archived session record back.
func (s *Service) LoadRecord(ctx context.Context, name string) (*SessionRecord, error) {
	reader, err := s.storage.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	return &record, nil
}

// ListRecords lists all archived sessions.
func (s *Service) ListRecords(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx, "session-")
}

// DeleteRecord removes one archived session.
func (s *Service) DeleteRecord(ctx context.Context, name string) error {
	return s.storage.Delete(ctx, name)
}
