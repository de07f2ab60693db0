package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/dmamonov/hilo/internal/core/event"
	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/metrics"
)

// EventSystem swaps the bus buffers and delivers last tick's events.
// Phase 0 (PreUpdate).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// SubscribeJournal logs world events and counts them.
func SubscribeJournal(bus *event.Bus, m *metrics.Metrics, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.ActorDied) {
		m.Deaths.WithLabelValues(ev.Kind).Inc()
		log.Info("actor died",
			zap.Uint64("unit", ev.UnitID),
			zap.String("kind", ev.Kind),
			zap.String("name", ev.Name),
			zap.Int("x", ev.X),
			zap.Int("y", ev.Y),
		)
	})
	event.Subscribe(bus, func(ev event.ActorTeleported) {
		m.Teleports.Inc()
		log.Debug("actor teleported",
			zap.Uint64("unit", ev.UnitID),
			zap.String("name", ev.Name),
			zap.Int("from_x", ev.FromX),
			zap.Int("from_y", ev.FromY),
			zap.Int("to_x", ev.ToX),
			zap.Int("to_y", ev.ToY),
		)
	})
	event.Subscribe(bus, func(ev event.Detonated) {
		m.Detonations.WithLabelValues(ev.Kind).Inc()
		log.Debug("detonation",
			zap.String("kind", ev.Kind),
			zap.Int("x", ev.X),
			zap.Int("y", ev.Y),
			zap.Bool("area", ev.Area),
		)
	})
}
