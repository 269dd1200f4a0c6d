package monitoring

import (
	"time"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	// Counters
	broadcastsTotal   prometheus.Counter
	recordingsTotal   prometheus.Counter
	screenSharesTotal prometheus.Counter
	bannersTotal      prometheus.Counter
	acquireFailures   prometheus.Counter

	// Gauges
	sessionMode         *prometheus.GaugeVec
	participantsOnStage prometheus.Gauge
	destinationsEnabled prometheus.Gauge

	// Histograms
	sessionDuration prometheus.Histogram
}

// NewPrometheusCollector registers studio metrics on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use private
// registries to avoid duplicate registration.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)

	return &PrometheusCollector{
		broadcastsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagecast_broadcasts_started_total",
			Help: "Total number of broadcasts started",
		}),

		recordingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagecast_recordings_started_total",
			Help: "Total number of recordings started",
		}),

		screenSharesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagecast_screen_shares_started_total",
			Help: "Total number of screen shares started",
		}),

		bannersTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagecast_banners_submitted_total",
			Help: "Total number of banners submitted",
		}),

		acquireFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stagecast_capture_acquisition_failures_total",
			Help: "Total number of failed media acquisitions",
		}),

		sessionMode: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stagecast_session_mode",
			Help: "Current session mode (1 for the active mode, 0 otherwise)",
		}, []string{"mode"}),

		participantsOnStage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stagecast_participants_on_stage",
			Help: "Number of participants currently on stage",
		}),

		destinationsEnabled: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stagecast_destinations_enabled",
			Help: "Number of destinations enabled for broadcast",
		}),

		sessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stagecast_session_duration_seconds",
			Help:    "Duration of finished sessions",
			Buckets: prometheus.ExponentialBuckets(60, 2, 10),
		}),
	}
}

var _ ports.MetricsSink = (*PrometheusCollector)(nil)

var allModes = []domain.SessionMode{
	domain.ModeIdle,
	domain.ModeLive,
	domain.ModeRecording,
	domain.ModeLiveAndRecording,
}

func (c *PrometheusCollector) SessionModeChanged(mode domain.SessionMode) {
	for _, m := range allModes {
		value := 0.0
		if m == mode {
			value = 1.0
		}
		c.sessionMode.WithLabelValues(string(m)).Set(value)
	}
}

func (c *PrometheusCollector) BroadcastStarted() {
	c.broadcastsTotal.Inc()
}

func (c *PrometheusCollector) RecordingStarted() {
	c.recordingsTotal.Inc()
}

func (c *PrometheusCollector) SessionFinalized(duration time.Duration) {
	c.sessionDuration.Observe(duration.Seconds())
}

func (c *PrometheusCollector) ScreenShareStarted() {
	c.screenSharesTotal.Inc()
}

func (c *PrometheusCollector) BannerSubmitted() {
	c.bannersTotal.Inc()
}

func (c *PrometheusCollector) StageChanged(onStage int) {
	c.participantsOnStage.Set(float64(onStage))
}

func (c *PrometheusCollector) DestinationsChanged(enabled int) {
	c.destinationsEnabled.Set(float64(enabled))
}

func (c *PrometheusCollector) AcquisitionFailed() {
	c.acquireFailures.Inc()
}
