package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmamonov/hilo/internal/world"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func rowText(cells []tcell.SimCell, width, y int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestPublisher_Versions(t *testing.T) {
	p := NewPublisher()
	assert.Equal(t, uint64(0), p.Version())
	assert.NotNil(t, p.Load())

	first := p.Publish(3, nil, []string{"a"})
	second := p.Publish(4, nil, nil)
	assert.Equal(t, uint64(1), first.Version)
	assert.Equal(t, uint64(2), second.Version)
	assert.Same(t, second, p.Load())
	assert.Equal(t, 3, first.Clock)
}

func TestPublisher_ConcurrentReaders(t *testing.T) {
	p := NewPublisher()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var last uint64
			for j := 0; j < 1000; j++ {
				v := p.Load().Version
				assert.GreaterOrEqual(t, v, last)
				last = v
			}
		}()
	}
	for i := 0; i < 500; i++ {
		p.Publish(i, nil, nil)
	}
	wg.Wait()
	assert.Equal(t, uint64(500), p.Version())
}

func TestColor_Palette(t *testing.T) {
	assert.Equal(t, tcell.ColorDefault, Color(world.PaintUnset))
	assert.Equal(t, tcell.ColorDefault, Color(world.Default))
	assert.Equal(t, tcell.PaletteColor(1), Color(world.Red))
	assert.Equal(t, tcell.PaletteColor(10), Color(world.GreenBright))
	assert.Equal(t, tcell.PaletteColor(15), Color(world.WhiteBright))
}

func TestDraw_FrameStatusAndTime(t *testing.T) {
	w := world.New(world.Options{Seed: 1})
	w.Init(3, []string{"P W P=neo"})
	frame, status := Capture(w)
	require.Len(t, status, 6)

	p := NewPublisher()
	snap := p.Publish(w.Clock().Now(), frame, status)

	s := newScreen(t, 40, 10)
	Draw(s, snap)
	s.Show()

	cells, width, _ := s.GetContents()
	assert.Equal(t, "@ █", rowText(cells, width, 0))
	assert.True(t, strings.HasPrefix(rowText(cells, width, 1), "Player#"))
	assert.Contains(t, rowText(cells, width, 1), "neo")
	assert.Equal(t, "Health: 100", rowText(cells, width, 3))
	assert.Equal(t, "Game Time: 0", rowText(cells, width, 7))

	fg, _, attr := cells[0].Style.Decompose()
	assert.Equal(t, tcell.PaletteColor(10), fg)
	assert.NotZero(t, attr&tcell.AttrBold)
}

func TestDraw_ClipsToScreen(t *testing.T) {
	snap := &Snapshot{Status: []string{strings.Repeat("x", 50), "second"}}
	s := newScreen(t, 10, 1)
	assert.NotPanics(t, func() { Draw(s, snap) })
	s.Show()

	cells, width, _ := s.GetContents()
	assert.Equal(t, strings.Repeat("x", 10), rowText(cells, width, 0))
}

func TestKeyCommand(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		ch   rune
		want world.Command
		quit bool
	}{
		{tcell.KeyLeft, 0, world.CmdLeft, false},
		{tcell.KeyRight, 0, world.CmdRight, false},
		{tcell.KeyUp, 0, world.CmdJump, false},
		{tcell.KeyDown, 0, world.CmdDescend, false},
		{tcell.KeyTab, 0, world.CmdSwitchTool, false},
		{tcell.KeyRune, ' ', world.CmdAct, false},
		{tcell.KeyRune, 'q', world.CmdFire, false},
		{tcell.KeyRune, 'Q', world.CmdFire, false},
		{tcell.KeyRune, 'x', world.CmdNone, false},
		{tcell.KeyEnter, 0, world.CmdNone, false},
		{tcell.KeyCtrlC, 0, world.CmdNone, true},
		{tcell.KeyCtrlD, 0, world.CmdNone, true},
	}
	for _, c := range cases {
		ev := tcell.NewEventKey(c.key, c.ch, tcell.ModNone)
		cmd, quit := KeyCommand(ev)
		assert.Equal(t, c.want, cmd, ev.Name())
		assert.Equal(t, c.quit, quit, ev.Name())
	}
}
