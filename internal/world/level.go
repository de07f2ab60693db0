package world

import (
	"strings"

	"go.uber.org/zap"
)

// Init builds the grid from text rows, top row first. Each row is cut at
// width; anything after it is a list of "symbol=name" bindings handed out,
// in order, to that row's instances of the symbol. Unknown symbols are empty
// space. The spawned units are placed by one Advance.
func (w *World) Init(width int, lines []string) {
	if width <= 0 {
		panic("world: level width must be positive")
	}
	w.width = width
	w.height = len(lines)
	w.bounded = true

	for row, line := range lines {
		y := w.height - 1 - row
		cells := []rune(line)
		var tail string
		if len(cells) > width {
			tail = string(cells[width:])
			cells = cells[:width]
		}
		names := w.parseBindings(tail, line)
		for x, ch := range cells {
			kind, ok := KindBySymbol(ch)
			if !ok {
				continue
			}
			var name string
			if queue := names[ch]; len(queue) > 0 {
				name, names[ch] = queue[0], queue[1:]
			}
			w.Spawn(kind, Position{X: x, Y: y}, Center, name)
		}
	}
	w.Advance()
}

func (w *World) parseBindings(tail, line string) map[rune][]string {
	names := make(map[rune][]string)
	for _, field := range strings.Fields(tail) {
		r := []rune(field)
		if len(r) < 3 || r[1] != '=' {
			w.log.Error("bad name binding", zap.String("binding", field), zap.String("line", line))
			continue
		}
		names[r[0]] = append(names[r[0]], string(r[2:]))
	}
	return names
}
