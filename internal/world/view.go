package world

// Paint is a terminal colour tag. The zero value means "unset".
type Paint uint8

const (
	PaintUnset Paint = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BlackBright
	RedBright
	GreenBright
	YellowBright
	BlueBright
	MagentaBright
	CyanBright
	WhiteBright
	Default
)

// Base returns the colour index 0-7 and whether the paint is the bright
// variant. Default and unset report index -1.
func (p Paint) Base() (index int, bright bool) {
	switch {
	case p >= Black && p <= White:
		return int(p - Black), false
	case p >= BlackBright && p <= WhiteBright:
		return int(p - BlackBright), true
	}
	return -1, false
}

// View is the render contribution of one unit, or the composite of a cell.
type View struct {
	BG    Paint
	FG    Paint
	Glyph rune // 0 = unset
	Bold  bool
}

// Join layers other over v: set fields override, bold is sticky.
func (v View) Join(other View) View {
	if other.BG != PaintUnset {
		v.BG = other.BG
	}
	if other.FG != PaintUnset {
		v.FG = other.FG
	}
	if other.Glyph != 0 {
		v.Glyph = other.Glyph
	}
	if other.Bold {
		v.Bold = true
	}
	return v
}

// Rune returns the glyph, or a space when unset.
func (v View) Rune() rune {
	if v.Glyph == 0 {
		return ' '
	}
	return v.Glyph
}

// Frame is a rendered grid, top row first.
type Frame [][]View

// Width of the frame in cells.
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Height of the frame in cells.
func (f Frame) Height() int { return len(f) }
