package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dmamonov/hilo/internal/world"
)

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorDefault)

// Color maps a paint tag onto the terminal's 16-colour palette.
func Color(p world.Paint) tcell.Color {
	index, bright := p.Base()
	if index < 0 {
		return tcell.ColorDefault
	}
	if bright {
		index += 8
	}
	return tcell.PaletteColor(index)
}

// Style converts a cell view into a tcell style.
func Style(v world.View) tcell.Style {
	return tcell.StyleDefault.
		Foreground(Color(v.FG)).
		Background(Color(v.BG)).
		Bold(v.Bold)
}

// Draw paints snap onto s: the frame at the top-left corner, the player
// reports under it, then the game time. The caller calls Show.
func Draw(s tcell.Screen, snap *Snapshot) {
	s.Clear()
	for y, row := range snap.Frame {
		for x, v := range row {
			s.SetContent(x, y, v.Rune(), nil, Style(v))
		}
	}
	y := snap.Frame.Height()
	for _, line := range snap.Status {
		drawText(s, 0, y, line, statusStyle)
		y++
	}
	drawText(s, 0, y, fmt.Sprintf("Game Time: %d", snap.Clock), statusStyle)
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, h := s.Size()
	if y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
