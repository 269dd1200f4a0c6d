package capture

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	"stagecast/pkg/utils"
)

// Config controls the simulated device layer.
type Config struct {
	// AcquireTimeout bounds a single acquisition attempt.
	AcquireTimeout time.Duration
	// AcquireLatency simulates the delay of device negotiation.
	AcquireLatency time.Duration
	// FailureRate in [0, 1] makes a fraction of acquisitions fail,
	// useful for exercising the degraded-capture path.
	FailureRate float64
}

// SimulatedProvider is a media device layer without real devices behind it.
// Acquisitions take AcquireLatency to resolve and hand back opaque handles.
type SimulatedProvider struct {
	cfg    Config
	logger *zap.SugaredLogger

	mu   sync.Mutex
	held map[domain.MediaHandle]domain.ParticipantKind
}

func NewSimulatedProvider(cfg Config, logger *zap.SugaredLogger) *SimulatedProvider {
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = 10 * time.Second
	}
	return &SimulatedProvider{
		cfg:    cfg,
		logger: logger,
		held:   make(map[domain.MediaHandle]domain.ParticipantKind),
	}
}

var _ ports.CaptureProvider = (*SimulatedProvider)(nil)

// Acquire negotiates a capture handle for the given kind. It blocks for the
// configured latency and honors both the caller's context and the provider's
// own acquire timeout.
func (p *SimulatedProvider) Acquire(ctx context.Context, kind domain.ParticipantKind) (domain.MediaHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.AcquireTimeout)
	defer cancel()

	if p.cfg.AcquireLatency > 0 {
		timer := time.NewTimer(p.cfg.AcquireLatency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.NoMediaHandle, fmt.Errorf("capture acquisition interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	if p.cfg.FailureRate > 0 && rand.Float64() < p.cfg.FailureRate {
		return domain.NoMediaHandle, fmt.Errorf("simulated %s device failure", kind)
	}

	handle := domain.MediaHandle(utils.GenerateID("media"))

	p.mu.Lock()
	p.held[handle] = kind
	p.mu.Unlock()

	p.logger.Debugw("media handle acquired",
		"handle", handle,
		"kind", kind,
	)
	return handle, nil
}

// Release returns a handle to the device layer. Unknown handles are ignored
// so release is safe to call from cleanup paths.
func (p *SimulatedProvider) Release(handle domain.MediaHandle) {
	if handle == domain.NoMediaHandle {
		return
	}

	p.mu.Lock()
	_, known := p.held[handle]
	delete(p.held, handle)
	p.mu.Unlock()

	if known {
		p.logger.Debugw("media handle released", "handle", handle)
	}
}

// HeldCount reports how many handles are currently outstanding.
func (p *SimulatedProvider) HeldCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.held)
}
