package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	coresys "github.com/dmamonov/hilo/internal/core/system"
	"github.com/dmamonov/hilo/internal/data"
	"github.com/dmamonov/hilo/internal/metrics"
	"github.com/dmamonov/hilo/internal/world"
)

type panicOnce struct{ fired bool }

func (p *panicOnce) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (p *panicOnce) Update(time.Duration) {
	if !p.fired {
		p.fired = true
		panic("boom")
	}
}

func tinyLevel() *data.Level {
	return &data.Level{Name: "tiny", Width: 5, Rows: []string{
		"WWWWW",
		"WP  W",
		"WWWWW",
	}}
}

func TestNew_RequiresLevel(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestGame_StepPublishesAndCounts(t *testing.T) {
	m := metrics.New()
	g, err := New(Options{Level: tinyLevel(), Seed: 1, Metrics: m})
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, uint64(1), g.Publisher().Version())
	assert.Nil(t, g.Scripts())

	pl := g.World().Players()[0]
	g.Submit(pl, world.CmdRight)
	for i := 0; i < 3; i++ {
		g.Step(70 * time.Millisecond)
	}
	assert.Equal(t, world.Pos(2, 1), pl.Position())
	assert.Equal(t, uint64(4), g.Publisher().Version())
	assert.Equal(t, 3, g.Publisher().Load().Clock)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Ticks))
	assert.Zero(t, testutil.ToFloat64(m.TickPanics))
}

func TestGame_PanickingTickIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New()
	g, err := New(Options{Level: tinyLevel(), Seed: 1, Metrics: m, Log: zap.New(core)})
	require.NoError(t, err)
	g.Register(&panicOnce{})

	g.Step(0)
	g.Step(0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TickPanics))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Ticks))
	require.Equal(t, 1, logs.FilterMessage("tick aborted").Len())
	// the first tick stopped before the clock phase, the second ran it
	assert.Equal(t, 1, g.World().Clock().Now())
}

func TestGame_ScriptsAreWired(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.lua"), []byte(`
function contact_damage(kind, base) return 0 end
`), 0o644))

	g, err := New(Options{Level: tinyLevel(), ScriptsDir: dir, Seed: 1})
	require.NoError(t, err)
	defer g.Close()
	require.NotNil(t, g.Scripts())
	assert.True(t, g.Scripts().Has("contact_damage"))

	_, err = New(Options{Level: tinyLevel(), ScriptsDir: writeBroken(t), Seed: 1})
	assert.Error(t, err)
}

func writeBroken(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte("function ("), 0o644))
	return dir
}

func TestGame_RunStopsOnCancel(t *testing.T) {
	g, err := New(Options{Level: tinyLevel(), Seed: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Positive(t, g.Publisher().Version())
}

func TestGame_BundledLevelsRun(t *testing.T) {
	levels, err := data.LoadLevelTable(filepath.Join("..", "..", "levels"))
	require.NoError(t, err)

	for _, name := range levels.Names() {
		t.Run(name, func(t *testing.T) {
			m := metrics.New()
			g, err := New(Options{
				Level:      levels.Get(name),
				ScriptsDir: filepath.Join("..", "..", "scripts"),
				Seed:       42,
				Metrics:    m,
			})
			require.NoError(t, err)
			defer g.Close()
			assert.NotEmpty(t, g.World().Players())

			for i := 0; i < 500; i++ {
				g.Step(0)
			}
			assert.Zero(t, testutil.ToFloat64(m.TickPanics))
			assert.Equal(t, 500, g.Publisher().Load().Clock)
		})
	}
}
