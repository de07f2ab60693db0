package world

// grid maps a position to its ordered occupant list.
// Cells are created on first insertion and kept afterwards, so iteration
// over order is stable across ticks.
// Accessed only from the game loop goroutine.
type grid struct {
	cells map[Position][]Unit
	order []Position
}

func newGrid() *grid {
	return &grid{cells: make(map[Position][]Unit)}
}

// at returns the live occupant slice; callers must not retain or mutate it.
func (g *grid) at(p Position) []Unit {
	return g.cells[p]
}

func (g *grid) add(p Position, u Unit) {
	list, ok := g.cells[p]
	if !ok {
		g.order = append(g.order, p)
	}
	g.cells[p] = append(list, u)
}

// remove drops u from the cell at p. Returns false when u was not there.
func (g *grid) remove(p Position, u Unit) bool {
	list := g.cells[p]
	for i, o := range list {
		if o == u {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			g.cells[p] = list[:len(list)-1]
			return true
		}
	}
	return false
}

func (g *grid) contains(p Position, u Unit) bool {
	for _, o := range g.cells[p] {
		if o == u {
			return true
		}
	}
	return false
}

// all returns every unit, cells in first-insertion order.
func (g *grid) all() []Unit {
	n := 0
	for _, p := range g.order {
		n += len(g.cells[p])
	}
	out := make([]Unit, 0, n)
	for _, p := range g.order {
		out = append(out, g.cells[p]...)
	}
	return out
}

func (g *grid) count() int {
	n := 0
	for _, list := range g.cells {
		n += len(list)
	}
	return n
}
