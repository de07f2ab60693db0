package world

import (
	"math/rand"

	"github.com/dmamonov/hilo/internal/core/event"
)

const (
	FluidContactDamage = 1

	GasolineBurnTicks   = 12
	GasolineBurnDamage  = 5
	GasolineBlastDamage = 20
)

// Fluid is Water or Gasoline. It flows down, else sideways, one cell per tick.
type Fluid struct {
	Base
	flow    Direction // remembered horizontal direction
	flaming int       // gasoline: burn countdown, 0 = not lit
	burnt   bool      // gasoline that burned out; waiting for removal
}

func newFluid(b Base, rnd *rand.Rand) *Fluid {
	return &Fluid{Base: b, flow: Horizontal[rnd.Intn(len(Horizontal))]}
}

// Flow returns the remembered horizontal direction.
func (f *Fluid) Flow() Direction { return f.flow }

// Flaming reports whether a gasoline unit is burning.
func (f *Fluid) Flaming() bool { return f.flaming > 0 }

func (f *Fluid) OnTick() {
	w := f.world
	switch {
	case f.canFlow(Down):
		w.Move(f, Down)
	case f.canFlow(f.flow):
		w.Move(f, f.flow)
	default:
		f.flow = f.flow.Inverse()
	}
	f.damageCell(f.pos, FluidContactDamage)

	if f.flaming > 0 {
		f.burn()
	}
}

func (f *Fluid) canFlow(d Direction) bool {
	target := f.pos.Translate(d)
	return f.world.IsAllowCrossing(target) && len(f.world.ListAtCategory(target, CategoryFluid)) == 0
}

func (f *Fluid) damageCell(p Position, n int) {
	ForEachMatching(f.world.ListAt(p), func(d Damageable) {
		if Unit(d) != Unit(f) {
			d.Damage(n)
		}
	})
}

// Damage ignites gasoline on anything stronger than the ambient trickle.
// Water ignores damage.
func (f *Fluid) Damage(n int) {
	if f.kind != KindGasoline || f.burnt || f.flaming > 0 || n <= FluidContactDamage {
		return
	}
	f.flaming = GasolineBurnTicks
	f.world.Spawn(KindExplosion, f.pos, Center, "")
}

func (f *Fluid) burn() {
	f.flaming--
	if f.flaming > 0 {
		if f.flaming%3 == 0 {
			f.damageCell(f.pos, GasolineBurnDamage)
			for _, d := range Orthogonal {
				f.damageCell(f.pos.Translate(d), GasolineBurnDamage)
			}
		}
		return
	}
	w := f.world
	f.burnt = true
	f.damageCell(f.pos.Translate(Down), GasolineBlastDamage)
	w.Spawn(KindExplosion, f.pos, Center, "")
	w.Remove(f)
	emit(w, event.Detonated{Kind: f.kind.String(), X: f.pos.X, Y: f.pos.Y})
}

func (f *Fluid) Render() View {
	if f.kind == KindGasoline {
		if f.flaming > 0 {
			if f.flaming%2 == 0 {
				return View{BG: RedBright, FG: YellowBright, Glyph: '%'}
			}
			return View{BG: YellowBright, FG: RedBright, Glyph: '%'}
		}
		return View{BG: Yellow}
	}
	return View{BG: BlueBright}
}
