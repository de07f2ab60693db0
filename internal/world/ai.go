package world

// AIEvery gates enemy decisions to one tick in seven.
const AIEvery = 7

// Order is a single enemy decision.
type Order int

const (
	OrderStep Order = iota
	OrderRotate
	OrderAct
	OrderClimb
	OrderDescend
)

var orderNames = map[string]Order{
	"step":    OrderStep,
	"rotate":  OrderRotate,
	"act":     OrderAct,
	"climb":   OrderClimb,
	"descend": OrderDescend,
}

// ParseOrder resolves an order name ("step", "rotate", "act", "climb", "descend").
func ParseOrder(s string) (Order, bool) {
	o, ok := orderNames[s]
	return o, ok
}

// EnemyView is what a Brain sees of one enemy.
type EnemyView struct {
	ID        uint64
	Name      string
	X, Y      int
	Direction Direction
	Moved     bool
	Health    int
	Clock     int
}

// Brain may replace the built-in patrol rule. Returning ok=false or no
// orders falls back to it.
type Brain interface {
	Think(v EnemyView) (orders []Order, ok bool)
}

// AI drives every Enemy on the grid.
type AI struct {
	world *World
	brain Brain
}

func NewAI(w *World, brain Brain) *AI {
	return &AI{world: w, brain: brain}
}

// Think runs one decision round when the clock is on an AI tick.
// An enemy that moved keeps walking; otherwise it tries to act, turns
// around when that fails, and steps.
func (ai *AI) Think() {
	now := ai.world.clock.Now()
	if now%AIEvery != 0 {
		return
	}
	for _, u := range ai.world.ListOfKind(KindEnemy) {
		e := u.(*Actor)
		if ai.brain != nil {
			orders, ok := ai.brain.Think(EnemyView{
				ID:        uint64(e.id),
				Name:      e.name,
				X:         e.pos.X,
				Y:         e.pos.Y,
				Direction: e.dir,
				Moved:     e.moved,
				Health:    e.health,
				Clock:     now,
			})
			if ok && len(orders) > 0 {
				e.follow(orders)
				continue
			}
		}
		if e.Moved() {
			e.Step()
			continue
		}
		if !e.Act() {
			e.Rotate()
		}
		e.Step()
	}
}

func (a *Actor) follow(orders []Order) {
	for _, o := range orders {
		switch o {
		case OrderStep:
			a.Step()
		case OrderRotate:
			a.Rotate()
		case OrderAct:
			a.Act()
		case OrderClimb:
			a.Climb()
		case OrderDescend:
			a.Descend()
		}
	}
}
