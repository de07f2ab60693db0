package world

// Thing is a collectible. Only keys exist so far.
type Thing struct {
	Base
	taken bool
}

func (t *Thing) movable() {}

func (t *Thing) AllowsCrossing() bool    { return true }
func (t *Thing) FallsUnderGravity() bool { return true }

func (t *Thing) Render() View { return View{Glyph: 'k'} }

// Switcher is a passive marker.
type Switcher struct {
	Base
}

func (s *Switcher) Render() View {
	if s.kind == KindTimedSwitcher {
		return View{Glyph: '0'}
	}
	return View{Glyph: 'o'}
}
