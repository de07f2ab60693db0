package world

import "fmt"

// Position is a grid cell. Y grows upward; row 0 is the bottom row.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// Translate returns the neighbouring cell in direction d.
func (p Position) Translate(d Direction) Position {
	dx, dy := d.Vector()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%02d,%02d)", p.X, p.Y)
}

// Direction is one of the four grid directions or Center.
type Direction int

const (
	Center Direction = iota
	Left
	Right
	Up
	Down
)

var (
	Horizontal      = []Direction{Left, Right}
	Vertical        = []Direction{Up, Down}
	HorizontalAndUp = []Direction{Left, Right, Up}
	Orthogonal      = []Direction{Right, Down, Left, Up}
)

var directionVectors = [...][2]int{
	Center: {0, 0},
	Left:   {-1, 0},
	Right:  {1, 0},
	Up:     {0, 1},
	Down:   {0, -1},
}

var directionNames = [...]string{
	Center: "Center",
	Left:   "Left",
	Right:  "Right",
	Up:     "Up",
	Down:   "Down",
}

// Valid reports whether d is one of the five declared directions.
func (d Direction) Valid() bool {
	return d >= Center && d <= Down
}

// Vector returns the unit offset of d. Panics on an undeclared direction.
func (d Direction) Vector() (dx, dy int) {
	mustDirection(d)
	v := directionVectors[d]
	return v[0], v[1]
}

// Inverse maps Left<->Right, Up<->Down and Center to itself.
func (d Direction) Inverse() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	case Center:
		return Center
	}
	panic(fmt.Sprintf("world: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection resolves a direction name as produced by String.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), true
		}
	}
	return Center, false
}

func mustDirection(d Direction) {
	if !d.Valid() {
		panic(fmt.Sprintf("world: invalid direction %d", int(d)))
	}
}
