package world

import "github.com/dmamonov/hilo/internal/core/event"

// transports act on every third tick
const transportEvery = 3

// Transport is a surface or device that holds, carries or relocates units.
type Transport struct {
	Base
}

// AllowsCrossing: travelators and lifts are floors, the rest can be entered.
func (t *Transport) AllowsCrossing() bool {
	switch t.kind {
	case KindTravelatorLeft, KindTravelatorRight, KindLift:
		return false
	}
	return true
}

func (t *Transport) IsHoldSurface() bool {
	switch t.kind {
	case KindLadder, KindRope, KindElevator, KindPushLeft, KindPushRight:
		return true
	}
	return false
}

// Carries returns the direction the transport moves its passengers in, or
// Center when it does not carry.
func (t *Transport) Carries() Direction {
	switch t.kind {
	case KindElevator:
		return Up
	case KindPushLeft, KindTravelatorLeft:
		return Left
	case KindPushRight, KindTravelatorRight:
		return Right
	}
	return Center
}

func (t *Transport) OnTick() {
	dir := t.Carries()
	if dir == Center || !t.world.clock.Every(transportEvery) {
		return
	}
	cell := t.pos
	if t.kind == KindTravelatorLeft || t.kind == KindTravelatorRight {
		cell = cell.Translate(Up)
	}
	w := t.world
	ForEachMatching(w.ListAt(cell), func(m Movable) { w.Move(m, dir) })
}

// Use sends the actor to a random other gate. Only teleports are usable.
func (t *Transport) Use(a *Actor) bool {
	if t.kind != KindTeleport {
		return false
	}
	w := t.world
	var gates []*Transport
	for _, u := range w.ListOfKind(KindTeleport) {
		if u != Unit(t) {
			gates = append(gates, u.(*Transport))
		}
	}
	if len(gates) == 0 {
		return false
	}
	gate := gates[w.rnd.Intn(len(gates))]
	from := a.Position()
	w.Remove(a)
	w.Spawn(KindAppear, t.pos, Center, "")
	w.clock.Scheduled(w.teleportDelay, func() {
		to := gate.Position()
		w.Put(a, to)
		w.Spawn(KindAppear, to, Center, "")
		emit(w, event.ActorTeleported{
			UnitID: uint64(a.id),
			Kind:   a.kind.String(),
			Name:   a.name,
			FromX:  from.X,
			FromY:  from.Y,
			ToX:    to.X,
			ToY:    to.Y,
		})
	})
	return true
}

func (t *Transport) Render() View {
	switch t.kind {
	case KindLadder:
		return View{Glyph: 'H'}
	case KindRope:
		return View{Glyph: '-'}
	case KindElevator:
		return View{FG: Blue, Glyph: '^'}
	case KindPushLeft:
		return View{FG: Green, Glyph: '<'}
	case KindPushRight:
		return View{FG: Green, Glyph: '>'}
	case KindTravelatorLeft:
		return View{FG: Blue, Glyph: '<'}
	case KindTravelatorRight:
		return View{FG: Blue, Glyph: '>'}
	case KindLift:
		return View{Glyph: '='}
	}
	return View{Glyph: 'T', Bold: true}
}
