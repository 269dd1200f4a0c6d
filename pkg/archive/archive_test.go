package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagecast/internal/core/domain"
)

func newTestService(t *testing.T) (*Service, string) {
	tmpDir := t.TempDir()
	storage, err := NewFileStorage(tmpDir)
	require.NoError(t, err)
	return NewService(storage), tmpDir
}

func testRecord() *SessionRecord {
	return RecordOf(domain.SessionSummary{
		SessionID:    "session_test",
		Duration:     90 * time.Second,
		WasLive:      true,
		WasRecording: true,
		Participants: []domain.ParticipantID{"p1", "p2"},
		Destinations: []domain.DestinationID{"d1"},
		EndedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, &domain.RecordingArtifacts{
		SessionID: "session_test",
		Master:    domain.ArtifactRef{Name: "master-broadcast.mp4", URI: "file:///m.mp4"},
	})
}

func TestService_SaveRecord(t *testing.T) {
	service, tmpDir := newTestService(t)

	name, err := service.SaveRecord(context.Background(), testRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	_, err = os.Stat(filepath.Join(tmpDir, name))
	assert.NoError(t, err)
}

func TestService_LoadRecord(t *testing.T) {
	service, _ := newTestService(t)

	record := testRecord()
	name, err := service.SaveRecord(context.Background(), record)
	require.NoError(t, err)

	loaded, err := service.LoadRecord(context.Background(), name)
	require.NoError(t, err)

	assert.Equal(t, record.SessionID, loaded.SessionID)
	assert.Equal(t, record.Duration, loaded.Duration)
	assert.True(t, loaded.WasRecording)
	require.NotNil(t, loaded.Artifacts)
	assert.Equal(t, "master-broadcast.mp4", loaded.Artifacts.Master.Name)
}

func TestService_ListAndDelete(t *testing.T) {
	service, _ := newTestService(t)

	name, err := service.SaveRecord(context.Background(), testRecord())
	require.NoError(t, err)

	names, err := service.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, name)

	require.NoError(t, service.DeleteRecord(context.Background(), name))

	names, err = service.ListRecords(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, names, name)
}
