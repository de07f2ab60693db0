package world

const (
	EffectTicks = 15
	AppearTicks = 25
)

// Effect is a transient visual: Blood, Explosion or Appear.
type Effect struct {
	Base
	countdown int
}

func newEffect(b Base) *Effect {
	e := &Effect{Base: b, countdown: EffectTicks}
	if b.kind == KindAppear {
		e.countdown = AppearTicks
	}
	return e
}

// Countdown returns the ticks left before the effect disappears.
func (e *Effect) Countdown() int { return e.countdown }

func (e *Effect) AllowsCrossing() bool { return true }

func (e *Effect) OnTick() {
	if e.countdown <= 0 {
		return
	}
	e.countdown--
	if e.countdown == 0 {
		e.world.Remove(e)
	}
}

func (e *Effect) Render() View {
	even := e.countdown%2 == 0
	switch e.kind {
	case KindBlood:
		if even {
			return View{BG: Red}
		}
		return View{BG: RedBright}
	case KindExplosion:
		if even {
			return View{BG: YellowBright, FG: Red}
		}
		return View{BG: RedBright, FG: Yellow}
	}
	if even {
		return View{BG: WhiteBright}
	}
	return View{BG: BlackBright}
}
