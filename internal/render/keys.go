package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dmamonov/hilo/internal/world"
)

// KeyCommand maps a decoded key to a player command. quit is set for the
// keys that end a session; unmapped keys return CmdNone.
func KeyCommand(ev *tcell.EventKey) (cmd world.Command, quit bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlD:
		return world.CmdNone, true
	case tcell.KeyLeft:
		return world.CmdLeft, false
	case tcell.KeyRight:
		return world.CmdRight, false
	case tcell.KeyUp:
		return world.CmdJump, false
	case tcell.KeyDown:
		return world.CmdDescend, false
	case tcell.KeyTab:
		return world.CmdSwitchTool, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return world.CmdAct, false
		case 'q', 'Q':
			return world.CmdFire, false
		}
	}
	return world.CmdNone, false
}
