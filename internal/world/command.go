package world

// Command is a player intent received from a terminal.
type Command int

const (
	CmdNone Command = iota
	CmdLeft
	CmdRight
	CmdJump
	CmdDescend
	CmdSwitchTool
	CmdAct
	CmdFire
)

var commandNames = [...]string{
	CmdNone:       "none",
	CmdLeft:       "left",
	CmdRight:      "right",
	CmdJump:       "jump",
	CmdDescend:    "descend",
	CmdSwitchTool: "switch-tool",
	CmdAct:        "act",
	CmdFire:       "fire",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// execute applies cmd to a. Commands for actors that are off the grid
// (dead or between teleport gates) are dropped.
func (a *Actor) execute(cmd Command) {
	if !a.placed || a.Dead() {
		return
	}
	switch cmd {
	case CmdLeft:
		a.Left()
	case CmdRight:
		a.Right()
	case CmdJump:
		if a.kind == KindPlayer {
			a.Jump()
		} else {
			a.Climb()
		}
	case CmdDescend:
		a.Descend()
	case CmdSwitchTool:
		a.ChangeTool()
	case CmdAct:
		a.Act()
	case CmdFire:
		a.UseTool()
	}
}
