package ports

import (
	"time"

	"stagecast/internal/core/domain"
)

// MetricsSink receives engine events for monitoring. The canonical
// implementation is the Prometheus collector in infrastructure/monitoring.
type MetricsSink interface {
	SessionModeChanged(mode domain.SessionMode)
	BroadcastStarted()
	RecordingStarted()
	SessionFinalized(duration time.Duration)
	ScreenShareStarted()
	BannerSubmitted()
	StageChanged(onStage int)
	DestinationsChanged(enabled int)
	AcquisitionFailed()
}
