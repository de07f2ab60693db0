package world

import (
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/dmamonov/hilo/internal/core/clock"
	"github.com/dmamonov/hilo/internal/core/event"
	"github.com/dmamonov/hilo/internal/core/ident"
)

// DefaultTeleportDelay is the number of ticks an actor spends between gates.
const DefaultTeleportDelay = 150

// Rules lets an external script override damage numbers.
type Rules interface {
	AmmoDamage(kind Kind, base int) int
	ContactDamage(kind Kind, base int) int
}

// Options configures a World. Zero values fall back to defaults.
type Options struct {
	Clock         *clock.Clock
	Bus           *event.Bus
	Rules         Rules
	Seed          int64
	Log           *zap.Logger
	TeleportDelay int
}

type operation struct {
	unit   Unit
	dir    Direction
	at     Position // create target
	create bool
	fall   bool
}

type action struct {
	actor *Actor
	cmd   Command
}

// World is the single mutable game state.
// Advance and every query run on the game loop goroutine; Submit is the only
// method safe to call from other goroutines.
type World struct {
	clock *clock.Clock
	bus   *event.Bus
	rules Rules
	rnd   *rand.Rand
	log   *zap.Logger
	ids   *ident.Allocator

	teleportDelay int

	grid      *grid
	ops       []operation
	removes   []Unit
	lastFalls map[Unit]struct{}

	mu      sync.Mutex
	actions []action

	width, height int
	bounded       bool
}

func New(opts Options) *World {
	w := &World{
		clock:         opts.Clock,
		bus:           opts.Bus,
		rules:         opts.Rules,
		rnd:           rand.New(rand.NewSource(opts.Seed)),
		log:           opts.Log,
		ids:           ident.NewAllocator(),
		teleportDelay: opts.TeleportDelay,
		grid:          newGrid(),
		lastFalls:     make(map[Unit]struct{}),
	}
	if w.clock == nil {
		w.clock = clock.New()
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	if w.teleportDelay <= 0 {
		w.teleportDelay = DefaultTeleportDelay
	}
	return w
}

func (w *World) Clock() *clock.Clock { return w.clock }
func (w *World) Width() int          { return w.width }
func (w *World) Height() int         { return w.height }

// UnitCount returns the number of units currently on the grid.
func (w *World) UnitCount() int { return w.grid.count() }

// SetRules replaces the damage rules; nil restores the built-in numbers.
func (w *World) SetRules(r Rules) { w.rules = r }

func emit[T any](w *World, ev T) {
	if w.bus != nil {
		event.Emit(w.bus, ev)
	}
}

func (w *World) inBounds(p Position) bool {
	if !w.bounded {
		return true
	}
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height
}

// ---------- construction & deferred mutation ----------

// Spawn builds a unit of kind at pos facing dir and queues its creation.
// Panics on an unknown kind.
func (w *World) Spawn(kind Kind, pos Position, dir Direction, name string) Unit {
	u := w.newUnit(kind, dir, name)
	w.Put(u, pos)
	return u
}

func (w *World) newUnit(kind Kind, dir Direction, name string) Unit {
	if !kind.valid() {
		panic(fmt.Sprintf("world: cannot spawn kind %d", int(kind)))
	}
	mustDirection(dir)
	b := Base{id: w.ids.Next(), kind: kind, name: name, world: w}
	switch kind.Category() {
	case CategoryActor:
		return newActor(b, dir)
	case CategoryAmmo:
		return newAmmo(b, dir)
	case CategoryBlock:
		return newBlock(b)
	case CategoryDoor:
		return &Door{Base: b}
	case CategoryEffect:
		return newEffect(b)
	case CategoryFluid:
		return newFluid(b, w.rnd)
	case CategorySwitcher:
		return &Switcher{Base: b}
	case CategoryThing:
		return &Thing{Base: b}
	case CategoryTransport:
		return &Transport{Base: b}
	}
	panic(fmt.Sprintf("world: no constructor for %s", kind))
}

// Put queues u for creation at pos. It is used both for fresh units and to
// re-insert a unit that was removed (dropped things, teleported actors).
func (w *World) Put(u Unit, pos Position) {
	if u == nil {
		panic("world: put nil unit")
	}
	if b := u.base(); !b.placed {
		b.pos = pos
	}
	w.ops = append(w.ops, operation{unit: u, dir: Center, at: pos, create: true})
}

// Move queues a one-cell move of u in dir.
func (w *World) Move(u Unit, dir Direction) {
	if u == nil {
		panic("world: move nil unit")
	}
	mustDirection(dir)
	w.ops = append(w.ops, operation{unit: u, dir: dir})
}

func (w *World) fall(u Unit) {
	w.ops = append(w.ops, operation{unit: u, dir: Down, fall: true})
}

// Remove queues u for removal. Removing an absent unit is a no-op.
func (w *World) Remove(u Unit) {
	if u == nil {
		panic("world: remove nil unit")
	}
	w.removes = append(w.removes, u)
}

// Submit queues a command for actor, applied at the start of the next Advance.
// Safe for concurrent use.
func (w *World) Submit(actor *Actor, cmd Command) {
	if actor == nil {
		panic("world: submit for nil actor")
	}
	w.mu.Lock()
	w.actions = append(w.actions, action{actor: actor, cmd: cmd})
	w.mu.Unlock()
}

// PendingActions returns the number of submitted commands not yet applied.
func (w *World) PendingActions() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.actions)
}

// PendingOperations returns the number of queued create/move/fall operations.
func (w *World) PendingOperations() int { return len(w.ops) }

// ---------- tick ----------

// Advance runs one tick: commands, removals, operations, then the gravity
// sweep that also drives every unit's OnTick.
func (w *World) Advance() {
	w.drainActions()
	w.applyRemovals()
	w.applyOperations()
	w.sweep()
}

func (w *World) drainActions() {
	w.mu.Lock()
	pending := w.actions
	w.actions = nil
	w.mu.Unlock()

	for _, a := range pending {
		a.actor.execute(a.cmd)
	}
}

func (w *World) applyRemovals() {
	for _, u := range w.removes {
		b := u.base()
		if w.grid.remove(b.pos, u) {
			b.placed = false
		}
	}
	w.removes = w.removes[:0]
}

func (w *World) applyOperations() {
	current := w.ops
	w.ops = nil
	for _, op := range current {
		w.apply(op)
	}
}

func (w *World) apply(op operation) {
	u := op.unit
	b := u.base()
	var target Position
	if op.create {
		target = op.at
	} else {
		if !w.grid.contains(b.pos, u) {
			return
		}
		target = b.pos.Translate(op.dir)
	}
	if !w.inBounds(target) {
		return
	}

	crossingAllowed := true
	occupants := w.ListAt(target)
	if len(occupants) > 0 {
		for _, o := range occupants {
			if o == u {
				continue
			}
			if o.BlocksOnCollision() {
				o.OnCollide(op.dir, []Unit{u}, u.AllowsCrossing())
			}
			if !o.AllowsCrossing() {
				crossingAllowed = false
				break
			}
		}
		u.OnCollide(op.dir.Inverse(), occupants, crossingAllowed)
	}

	if !crossingAllowed && !op.create {
		return
	}
	if b.placed && w.grid.contains(b.pos, u) {
		w.grid.remove(b.pos, u)
	}
	w.grid.add(target, u)
	b.pos = target
	b.placed = true
	u.OnMove()
	if op.fall {
		w.lastFalls[u] = struct{}{}
	}
}

func (w *World) sweep() {
	doFalls := w.clock.Every(3)
	for _, u := range w.grid.all() {
		u.OnTick()
		if !doFalls || !u.FallsUnderGravity() {
			continue
		}
		pos := u.Position()
		if w.IsHold(pos) && u.IsHoldOnSurface() {
			continue
		}
		_, fellLast := w.lastFalls[u]
		if w.IsAllowCrossing(pos.Translate(Down)) || fellLast {
			w.fall(u)
		}
	}
	if doFalls {
		clear(w.lastFalls)
	}
}

// ---------- queries ----------

// ListAt returns a copy of the occupants of p, bottom layer first.
func (w *World) ListAt(p Position) []Unit {
	list := w.grid.at(p)
	if len(list) == 0 {
		return nil
	}
	out := make([]Unit, len(list))
	copy(out, list)
	return out
}

// ListAtKind returns the occupants of p with the given kind.
func (w *World) ListAtKind(p Position, kind Kind) []Unit {
	var out []Unit
	for _, u := range w.grid.at(p) {
		if u.Kind() == kind {
			out = append(out, u)
		}
	}
	return out
}

// ListAtCategory returns the occupants of p in the given category.
func (w *World) ListAtCategory(p Position, c Category) []Unit {
	var out []Unit
	for _, u := range w.grid.at(p) {
		if u.Kind().Category() == c {
			out = append(out, u)
		}
	}
	return out
}

// ListOfKind returns every unit of kind on the grid, in grid order.
func (w *World) ListOfKind(kind Kind) []Unit {
	var out []Unit
	for _, p := range w.grid.order {
		for _, u := range w.grid.cells[p] {
			if u.Kind() == kind {
				out = append(out, u)
			}
		}
	}
	return out
}

// ListNamed returns the units of kind carrying name.
func (w *World) ListNamed(kind Kind, name string) []Unit {
	var out []Unit
	for _, u := range w.ListOfKind(kind) {
		if u.Name() == name {
			out = append(out, u)
		}
	}
	return out
}

// Units returns a snapshot of every unit on the grid.
func (w *World) Units() []Unit { return w.grid.all() }

// IsAllowCrossing reports whether every occupant of p can be crossed.
// Cells outside the initialised bounds are never crossable.
func (w *World) IsAllowCrossing(p Position) bool {
	if !w.inBounds(p) {
		return false
	}
	for _, u := range w.grid.at(p) {
		if !u.AllowsCrossing() {
			return false
		}
	}
	return true
}

// IsHold reports whether any occupant of p is a hold surface.
func (w *World) IsHold(p Position) bool {
	for _, u := range w.grid.at(p) {
		if u.IsHoldSurface() {
			return true
		}
	}
	return false
}

// Players returns all player actors on the grid.
func (w *World) Players() []*Actor {
	var out []*Actor
	for _, u := range w.ListOfKind(KindPlayer) {
		out = append(out, u.(*Actor))
	}
	return out
}

// Render composes the view of every cell, top row first.
func (w *World) Render() Frame {
	frame := make(Frame, w.height)
	for row := range frame {
		y := w.height - 1 - row
		line := make([]View, w.width)
		for x := range line {
			var v View
			for _, u := range w.grid.at(Position{X: x, Y: y}) {
				v = v.Join(u.Render())
			}
			line[x] = v
		}
		frame[row] = line
	}
	return frame
}
