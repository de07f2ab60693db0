package system

import (
	"time"

	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/metrics"
	"github.com/dmamonov/hilo/internal/render"
	"github.com/dmamonov/hilo/internal/world"
)

// ViewSystem publishes the tick's snapshot for session writers.
// Phase 4 (Output).
type ViewSystem struct {
	world   *world.World
	pub     *render.Publisher
	metrics *metrics.Metrics
}

func NewViewSystem(w *world.World, pub *render.Publisher, m *metrics.Metrics) *ViewSystem {
	return &ViewSystem{world: w, pub: pub, metrics: m}
}

func (s *ViewSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ViewSystem) Update(_ time.Duration) {
	frame, status := render.Capture(s.world)
	s.pub.Publish(s.world.Clock().Now(), frame, status)
	s.metrics.Units.Set(float64(s.world.UnitCount()))
}
