package world

import "github.com/dmamonov/hilo/internal/core/event"

type ammoSpec struct {
	damage    int
	lifetime  int  // ticks before silent expiry, 0 = none
	moveEvery int  // move along dir every n ticks of age, 0 = static
	area      bool // explode into the orthogonal neighbours too
	silent    bool // no explosion on impact
}

var ammoSpecs = map[Kind]ammoSpec{
	KindBlade:    {damage: 1000, lifetime: 2, silent: true},
	KindBullet:   {damage: 10, lifetime: 90, moveEvery: 3},
	KindRocket:   {damage: 50, moveEvery: 2},
	KindGrenade:  {damage: 30, area: true},
	KindMine:     {damage: 40, area: true},
	KindDynamite: {damage: 100},
}

// grenades fly only after leaving a launcher
const grenadeFlightEvery = 3

// Ammo is a projectile or a placed explosive.
type Ammo struct {
	Base
	dir      Direction
	age      int
	launched bool
	spent    bool
}

func newAmmo(b Base, dir Direction) *Ammo {
	return &Ammo{Base: b, dir: dir}
}

func (m *Ammo) Direction() Direction { return m.dir }

func (m *Ammo) spec() ammoSpec { return ammoSpecs[m.kind] }

// DamageAmount is the impact damage after rule overrides.
func (m *Ammo) DamageAmount() int {
	return m.world.ammoDamage(m.kind, m.spec().damage)
}

// Area reports whether the impact spreads into the four neighbours.
func (m *Ammo) Area() bool { return m.spec().area }

func (m *Ammo) BlocksOnCollision() bool { return true }

func (m *Ammo) FallsUnderGravity() bool {
	return m.kind == KindGrenade && m.launched
}

func (m *Ammo) OnTick() {
	if m.spent {
		return
	}
	s := m.spec()
	m.age++
	if s.lifetime > 0 && m.age >= s.lifetime {
		m.spent = true
		m.world.Remove(m)
		return
	}
	every := s.moveEvery
	if m.kind == KindGrenade && m.launched {
		every = grenadeFlightEvery
	}
	if every > 0 && m.dir != Center && m.age%every == 0 {
		m.world.Move(m, m.dir)
	}
}

func (m *Ammo) OnCollide(_ Direction, collisions []Unit, crossingAllowed bool) {
	if m.spent {
		return
	}
	if crossingAllowed && !AnyMatching[Damageable](collisions) {
		return
	}
	dmg := m.DamageAmount()
	ForEachMatching(collisions, func(d Damageable) { d.Damage(dmg) })
	m.spent = true
	m.world.Remove(m)
	m.terminate(dmg)
}

func (m *Ammo) terminate(dmg int) {
	s := m.spec()
	if s.silent {
		return
	}
	w := m.world
	w.Spawn(KindExplosion, m.pos, Center, "")
	if s.area {
		for _, d := range Orthogonal {
			p := m.pos.Translate(d)
			w.Spawn(KindExplosion, p, Center, "")
			ForEachMatching(w.ListAt(p), func(t Damageable) { t.Damage(dmg) })
		}
	}
	emit(w, event.Detonated{Kind: m.kind.String(), X: m.pos.X, Y: m.pos.Y, Area: s.area})
}

func (m *Ammo) Render() View {
	switch m.kind {
	case KindBlade:
		return View{FG: WhiteBright, Glyph: '-'}
	case KindBullet:
		return View{FG: RedBright, Glyph: '·'}
	case KindRocket:
		if m.dir == Left {
			return View{FG: Yellow, Glyph: '⤛'}
		}
		return View{FG: Yellow, Glyph: '⤜'}
	case KindGrenade:
		return View{FG: YellowBright, Glyph: '*'}
	case KindMine:
		return View{FG: Red, Glyph: '_'}
	}
	return View{FG: Red, Glyph: 'i'}
}

// Weapon spawns ammo next to the actor using it.
type Weapon struct {
	name   string
	ammo   Kind
	lofted bool // target is up and forward
}

var (
	Knife    = &Weapon{name: "Knife", ammo: KindBlade}
	Pistol   = &Weapon{name: "Pistol", ammo: KindBullet}
	Launcher = &Weapon{name: "Launcher", ammo: KindRocket}
	Bazooka  = &Weapon{name: "Bazooka", ammo: KindGrenade, lofted: true}
)

func (wp *Weapon) String() string {
	if wp == nil {
		return "none"
	}
	return wp.name
}

// AmmoKind is the kind of ammo the weapon spawns.
func (wp *Weapon) AmmoKind() Kind { return wp.ammo }

// Target returns the cell the weapon spawns its ammo into.
func (wp *Weapon) Target(a *Actor) Position {
	p := a.Position()
	if wp.lofted {
		p = p.Translate(Up)
	}
	return p.Translate(a.Direction())
}

// Use spawns one ammo at the target unless the same kind is already there.
func (wp *Weapon) Use(a *Actor) bool {
	w := a.world
	target := wp.Target(a)
	if len(w.ListAtKind(target, wp.ammo)) > 0 {
		return false
	}
	m := w.newUnit(wp.ammo, a.Direction(), "").(*Ammo)
	m.launched = true
	w.Put(m, target)
	return true
}
