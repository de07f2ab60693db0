package world

import (
	"fmt"

	"github.com/dmamonov/hilo/internal/core/ident"
)

// Unit is anything that occupies a grid cell.
// Units never change grid membership themselves; they ask the World through
// Move, Put, Spawn and Remove, which are applied on the next Advance.
type Unit interface {
	ID() ident.ID
	Kind() Kind
	Name() string
	Position() Position
	// Placed reports whether the unit is currently on the grid.
	Placed() bool

	AllowsCrossing() bool
	IsHoldSurface() bool
	IsHoldOnSurface() bool
	FallsUnderGravity() bool
	BlocksOnCollision() bool

	OnTick()
	OnMove()
	OnCollide(dir Direction, collisions []Unit, crossingAllowed bool)
	Render() View

	base() *Base
}

// Damageable units lose health.
type Damageable interface {
	Unit
	Damage(n int)
}

// Usable units react to an actor's Act.
type Usable interface {
	Unit
	Use(a *Actor) bool
}

// Movable units are carried by transports.
type Movable interface {
	Unit
	movable()
}

// Base carries identity and placement plus the default (all false, no-op)
// capabilities. Every variant embeds it.
type Base struct {
	id     ident.ID
	kind   Kind
	name   string
	pos    Position
	placed bool
	world  *World
}

func (b *Base) ID() ident.ID                      { return b.id }
func (b *Base) Kind() Kind                        { return b.kind }
func (b *Base) Name() string                      { return b.name }
func (b *Base) Position() Position                { return b.pos }
func (b *Base) Placed() bool                      { return b.placed }
func (b *Base) AllowsCrossing() bool              { return false }
func (b *Base) IsHoldSurface() bool               { return false }
func (b *Base) IsHoldOnSurface() bool             { return false }
func (b *Base) FallsUnderGravity() bool           { return false }
func (b *Base) BlocksOnCollision() bool           { return false }
func (b *Base) OnTick()                           {}
func (b *Base) OnMove()                           {}
func (b *Base) OnCollide(Direction, []Unit, bool) {}
func (b *Base) Render() View                      { return View{} }

func (b *Base) base() *Base { return b }

func (b *Base) String() string {
	if b.name != "" {
		return fmt.Sprintf("%s%s(%s)", b.kind, b.id, b.name)
	}
	return fmt.Sprintf("%s%s", b.kind, b.id)
}

// ForEachMatching calls fn for every unit in units that implements T.
func ForEachMatching[T any](units []Unit, fn func(T)) {
	for _, u := range units {
		if t, ok := u.(T); ok {
			fn(t)
		}
	}
}

// FirstMatching calls fn on the units implementing T, in order, until one
// returns true. Reports whether any did.
func FirstMatching[T any](units []Unit, fn func(T) bool) bool {
	for _, u := range units {
		if t, ok := u.(T); ok && fn(t) {
			return true
		}
	}
	return false
}

// AnyMatching reports whether units holds an element implementing T.
func AnyMatching[T any](units []Unit) bool {
	for _, u := range units {
		if _, ok := u.(T); ok {
			return true
		}
	}
	return false
}
