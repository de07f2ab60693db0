package world

// AutomaticDoorOpenTicks is how long an automatic door stays open after a
// keyed actor bumps into it.
const AutomaticDoorOpenTicks = 30

// Door is a Locked or Automatic door.
type Door struct {
	Base
	key  *Thing // locked: the surrendered key
	open int    // automatic: ticks left open
}

// Open reports whether the door can currently be crossed.
func (d *Door) Open() bool {
	if d.kind == KindLockedDoor {
		return d.key != nil
	}
	return d.open > 0
}

func (d *Door) AllowsCrossing() bool    { return d.Open() }
func (d *Door) BlocksOnCollision() bool { return d.kind == KindAutomaticDoor }

// Use toggles a locked door: it takes the actor's first key to open and
// hands the key back to close. Automatic doors are not usable.
func (d *Door) Use(a *Actor) bool {
	if d.kind != KindLockedDoor {
		return false
	}
	if d.key != nil {
		a.give(d.key)
		d.key = nil
		return true
	}
	if k := a.takeKey(); k != nil {
		d.key = k
		return true
	}
	return false
}

// OnCollide opens an automatic door for an actor carrying a key.
func (d *Door) OnCollide(_ Direction, collisions []Unit, _ bool) {
	if d.kind != KindAutomaticDoor {
		return
	}
	ForEachMatching(collisions, func(a *Actor) {
		if a.hasKey() {
			d.open = AutomaticDoorOpenTicks
		}
	})
}

func (d *Door) OnTick() {
	if d.kind != KindAutomaticDoor || d.open <= 0 {
		return
	}
	d.open--
	if d.open == 0 && len(d.world.grid.at(d.pos)) > 1 {
		// someone is standing in the doorway
		d.open = 1
	}
}

func (d *Door) Render() View {
	if d.Open() {
		return View{BG: BlackBright, FG: Black, Glyph: 'k'}
	}
	if d.kind == KindAutomaticDoor {
		return View{BG: BlackBright, FG: BlueBright, Glyph: 'A', Bold: true}
	}
	return View{BG: BlackBright, FG: BlueBright, Glyph: 'D', Bold: true}
}
