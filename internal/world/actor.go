package world

import (
	"fmt"
	"strings"

	"github.com/dmamonov/hilo/internal/core/event"
)

const (
	ActorHealth        = 100
	EnemyContactDamage = 25
	JumpTicks          = 3
)

// Actor is a Player, Enemy or SmallEnemy.
type Actor struct {
	Base
	dir    Direction
	health int
	things []*Thing
	status string

	// player only
	jumping int
	tools   []*Weapon // empty until armed
	toolAt  int

	// enemy only
	moved bool
}

func newActor(b Base, dir Direction) *Actor {
	if dir == Center {
		dir = Right
	}
	return &Actor{Base: b, dir: dir, health: ActorHealth}
}

func (a *Actor) movable() {}

func (a *Actor) Direction() Direction { return a.dir }
func (a *Actor) Health() int          { return a.health }
func (a *Actor) Status() string       { return a.status }
func (a *Actor) Dead() bool           { return a.health <= 0 }

// Moved reports whether an enemy has moved since its last Step.
func (a *Actor) Moved() bool { return a.moved }

// Jumping returns the remaining jump ticks.
func (a *Actor) Jumping() int { return a.jumping }

// Things returns a copy of the carried things.
func (a *Actor) Things() []*Thing {
	out := make([]*Thing, len(a.things))
	copy(out, a.things)
	return out
}

// Tools returns the primary and secondary weapons, nil until armed.
// Tools returns the selected weapon and the one ChangeTool selects next.
// Both are nil before the actor is armed.
func (a *Actor) Tools() (primary, secondary *Weapon) {
	if len(a.tools) == 0 {
		return nil, nil
	}
	return a.tools[a.toolAt], a.tools[(a.toolAt+1)%len(a.tools)]
}

func (a *Actor) AllowsCrossing() bool    { return true }
func (a *Actor) BlocksOnCollision() bool { return true }
func (a *Actor) IsHoldOnSurface() bool   { return true }

func (a *Actor) FallsUnderGravity() bool {
	if a.kind == KindPlayer {
		return a.jumping <= 0
	}
	return true
}

func (a *Actor) OnTick() {
	if a.kind == KindPlayer && a.jumping > 0 {
		a.jumping--
	}
}

func (a *Actor) OnMove() {
	if a.kind == KindEnemy {
		a.moved = true
	}
}

func (a *Actor) OnCollide(_ Direction, collisions []Unit, crossingAllowed bool) {
	if crossingAllowed {
		ForEachMatching(collisions, func(t *Thing) {
			if t.taken {
				return
			}
			t.taken = true
			a.things = append(a.things, t)
			a.world.Remove(t)
		})
	}
	if a.kind == KindEnemy {
		dmg := a.world.contactDamage(a.kind, EnemyContactDamage)
		ForEachMatching(collisions, func(d Damageable) {
			if Unit(d) != Unit(a) {
				d.Damage(dmg)
			}
		})
	}
}

func (a *Actor) Damage(n int) {
	if a.Dead() {
		return
	}
	a.status = fmt.Sprintf("Damage %d hits", n)
	a.health -= n
	if a.health > 0 {
		a.world.Spawn(KindBlood, a.pos, Center, "")
		return
	}
	a.status = "Dead"
	a.world.Remove(a)
	for _, t := range a.things {
		t.taken = false
		a.world.Put(t, a.pos)
	}
	a.things = nil
	emit(a.world, event.ActorDied{
		UnitID: uint64(a.id),
		Kind:   a.kind.String(),
		Name:   a.name,
		X:      a.pos.X,
		Y:      a.pos.Y,
	})
}

// Step moves one cell in the facing direction.
func (a *Actor) Step() {
	a.status = "Step " + a.dir.String()
	a.world.Move(a, a.dir)
	a.moved = false
}

// Rotate turns around.
func (a *Actor) Rotate() {
	a.dir = a.dir.Inverse()
	a.status = "Rotate to " + a.dir.String()
}

// Left steps left when already facing left, otherwise turns.
func (a *Actor) Left() {
	if a.dir == Left {
		a.Step()
	} else {
		a.Rotate()
	}
}

// Right steps right when already facing right, otherwise turns.
func (a *Actor) Right() {
	if a.dir == Right {
		a.Step()
	} else {
		a.Rotate()
	}
}

// Climb moves up when the cell above is a hold surface.
func (a *Actor) Climb() {
	if a.world.IsHold(a.pos.Translate(Up)) {
		a.status = "Climb OK"
		a.world.Move(a, Up)
		return
	}
	a.status = "Climb nope"
}

func (a *Actor) Descend() {
	a.status = "Descend"
	a.world.Move(a, Down)
}

// Act uses the first Usable in the facing cell when carrying something, then
// falls back to the first Usable in the actor's own cell.
func (a *Actor) Act() bool {
	use := func(u Usable) bool { return u.Use(a) }
	if len(a.things) > 0 && FirstMatching(a.world.ListAt(a.pos.Translate(a.dir)), use) {
		a.status = "Act thing used!"
		return true
	}
	if FirstMatching(a.world.ListAt(a.pos), use) {
		a.status = "Act pressed"
		return true
	}
	a.status = "Act nope"
	return false
}

// Jump climbs when on a hold surface, otherwise leaps one cell up from solid
// ground. Gravity is suspended for the following JumpTicks ticks.
func (a *Actor) Jump() {
	if a.world.IsHold(a.pos) {
		a.Climb()
		return
	}
	if a.world.IsAllowCrossing(a.pos.Translate(Down)) {
		a.status = "Jump denied"
		return
	}
	a.status = "Jump"
	if a.jumping <= 0 {
		a.jumping = JumpTicks
		a.world.Move(a, Up)
		a.status = "Jump OK"
	}
}

// ChangeTool selects the next weapon in the rack.
func (a *Actor) ChangeTool() {
	if len(a.tools) > 0 {
		a.toolAt = (a.toolAt + 1) % len(a.tools)
	}
	primary, _ := a.Tools()
	a.status = "Switched to " + primary.String()
}

// UseTool fires the primary weapon. The first call arms the actor with the
// weapon rack instead, pistol selected and bazooka next.
func (a *Actor) UseTool() {
	if len(a.tools) == 0 {
		a.tools = []*Weapon{Pistol, Bazooka, Launcher, Knife}
		a.toolAt = 0
		a.status = "Armed"
		return
	}
	tool := a.tools[a.toolAt]
	tool.Use(a)
	a.status = "Used: " + tool.String()
}

// takeKey hands the first carried key to the caller.
func (a *Actor) takeKey() *Thing {
	for i, t := range a.things {
		if t.kind == KindKey {
			a.things = append(a.things[:i], a.things[i+1:]...)
			return t
		}
	}
	return nil
}

func (a *Actor) hasKey() bool {
	for _, t := range a.things {
		if t.kind == KindKey {
			return true
		}
	}
	return false
}

func (a *Actor) give(t *Thing) {
	a.things = append(a.things, t)
}

// Report returns the status panel lines shown under the map.
func (a *Actor) Report() []string {
	label := a.kind.String() + a.id.String()
	if a.name != "" {
		label += " " + a.name
	}
	primary, secondary := a.Tools()
	bag := make([]string, len(a.things))
	for i, t := range a.things {
		bag[i] = t.kind.String()
	}
	return []string{
		label + ": " + a.status,
		"xy" + a.pos.String(),
		fmt.Sprintf("Health: %d", a.health),
		"Weapons Primary: " + primary.String(),
		"      Secondary: " + secondary.String(),
		"Bag: [" + strings.Join(bag, ", ") + "]",
	}
}

func (a *Actor) Render() View {
	switch a.kind {
	case KindEnemy:
		return View{FG: MagentaBright, Glyph: '$', Bold: true}
	case KindSmallEnemy:
		return View{FG: MagentaBright, Glyph: 's', Bold: true}
	}
	return View{FG: GreenBright, Glyph: '@', Bold: true}
}
