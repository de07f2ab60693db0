package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dmamonov/hilo/internal/core/clock"
	"github.com/dmamonov/hilo/internal/core/event"
	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/data"
	"github.com/dmamonov/hilo/internal/metrics"
	"github.com/dmamonov/hilo/internal/render"
	"github.com/dmamonov/hilo/internal/scripting"
	"github.com/dmamonov/hilo/internal/system"
	"github.com/dmamonov/hilo/internal/world"
)

type Options struct {
	Level         *data.Level
	ScriptsDir    string // empty = built-in rules only
	Seed          int64
	TeleportDelay int
	Metrics       *metrics.Metrics
	Log           *zap.Logger
}

// Game wires the clock, world, rules and systems of one running level.
// Everything except Submit and Publisher().Load belongs to the game loop.
type Game struct {
	clock   *clock.Clock
	bus     *event.Bus
	world   *world.World
	scripts *scripting.Engine
	pub     *render.Publisher
	runner  *coresys.Runner
	metrics *metrics.Metrics
	log     *zap.Logger
}

func New(opts Options) (*Game, error) {
	if opts.Level == nil {
		return nil, errors.New("no level")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	g := &Game{
		clock:   clock.New(),
		bus:     event.NewBus(),
		pub:     render.NewPublisher(),
		runner:  coresys.NewRunner(),
		metrics: m,
		log:     log,
	}
	g.world = world.New(world.Options{
		Clock:         g.clock,
		Bus:           g.bus,
		Seed:          opts.Seed,
		Log:           log.Named("world"),
		TeleportDelay: opts.TeleportDelay,
	})

	var brain world.Brain
	if opts.ScriptsDir != "" {
		engine, err := scripting.NewEngine(opts.ScriptsDir, log.Named("lua"))
		if err != nil {
			return nil, fmt.Errorf("scripts: %w", err)
		}
		g.scripts = engine
		g.world.SetRules(engine)
		brain = engine
	}

	g.world.Init(opts.Level.Width, opts.Level.Rows)

	system.SubscribeJournal(g.bus, m, log)
	g.runner.Register(system.NewEventSystem(g.bus))
	g.runner.Register(system.NewWorldSystem(g.world))
	g.runner.Register(system.NewAISystem(world.NewAI(g.world, brain)))
	g.runner.Register(system.NewClockSystem(g.clock))
	g.runner.Register(system.NewViewSystem(g.world, g.pub, m))

	frame, status := render.Capture(g.world)
	g.pub.Publish(g.clock.Now(), frame, status)

	log.Info("level loaded",
		zap.String("level", opts.Level.Name),
		zap.Int("width", g.world.Width()),
		zap.Int("height", g.world.Height()),
		zap.Int("units", g.world.UnitCount()),
		zap.Int("players", len(g.world.Players())),
	)
	return g, nil
}

func (g *Game) World() *world.World          { return g.world }
func (g *Game) Publisher() *render.Publisher { return g.pub }
func (g *Game) Scripts() *scripting.Engine   { return g.scripts }

// Register adds a system, e.g. the SSH session binder, to the tick.
func (g *Game) Register(sys coresys.System) { g.runner.Register(sys) }

// Submit queues a player command. Safe from any goroutine.
func (g *Game) Submit(a *world.Actor, cmd world.Command) { g.world.Submit(a, cmd) }

// Step runs one tick. A panic inside a system aborts only that tick; it is
// logged and counted and the next tick runs normally.
func (g *Game) Step(dt time.Duration) {
	start := time.Now()
	err := g.runner.Tick(dt)
	g.metrics.TickDuration.Observe(time.Since(start).Seconds())
	g.metrics.Ticks.Inc()
	if err != nil {
		g.metrics.TickPanics.Inc()
		g.log.Error("tick aborted", zap.Int("clock", g.clock.Now()), zap.Error(err))
	}
}

// Run steps the game every tickRate until ctx is done.
func (g *Game) Run(ctx context.Context, tickRate time.Duration) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.Step(tickRate)
		case <-ctx.Done():
			return
		}
	}
}

// Close releases the script VM.
func (g *Game) Close() {
	if g.scripts != nil {
		g.scripts.Close()
	}
}
