package system

import (
	"time"

	"github.com/dmamonov/hilo/internal/core/clock"
	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/world"
)

// WorldSystem advances the grid: drained actions, removals, queued
// operations and the gravity sweep. Phase 1 (Update).
type WorldSystem struct {
	world *world.World
}

func NewWorldSystem(w *world.World) *WorldSystem {
	return &WorldSystem{world: w}
}

func (s *WorldSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WorldSystem) Update(_ time.Duration) { s.world.Advance() }

// AISystem lets the enemies decide after the world has moved.
// Phase 2 (PostUpdate).
type AISystem struct {
	ai *world.AI
}

func NewAISystem(ai *world.AI) *AISystem {
	return &AISystem{ai: ai}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *AISystem) Update(_ time.Duration) { s.ai.Think() }

// ClockSystem advances game time and fires due callbacks. Phase 3 (Clock).
type ClockSystem struct {
	clock *clock.Clock
}

func NewClockSystem(c *clock.Clock) *ClockSystem {
	return &ClockSystem{clock: c}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseClock }

func (s *ClockSystem) Update(_ time.Duration) { s.clock.Tick() }
