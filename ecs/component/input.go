package component

import "math"

type CommandKind int

const (
	CommandMoveAxis CommandKind = iota
	CommandRunStart
	CommandRunEnd
	CommandPunch
	CommandKick
)

func (k CommandKind) String() string {
	switch k {
	case CommandMoveAxis:
		return "move"
	case CommandRunStart:
		return "run_start"
	case CommandRunEnd:
		return "run_end"
	case CommandPunch:
		return "punch"
	case CommandKick:
		return "kick"
	default:
		return "unknown"
	}
}

// Command is one discrete input. Value is only read for CommandMoveAxis.
type Command struct {
	Kind  CommandKind
	Value float64
}

func MoveAxis(v float64) Command { return Command{Kind: CommandMoveAxis, Value: v} }
func RunStart() Command          { return Command{Kind: CommandRunStart} }
func RunEnd() Command            { return Command{Kind: CommandRunEnd} }
func Punch() Command             { return Command{Kind: CommandPunch} }
func Kick() Command              { return Command{Kind: CommandKick} }

// CommandQueue buffers commands for one fighter until the next tick drains it.
type CommandQueue struct {
	Pending []Command
}

func (q *CommandQueue) Push(cmd Command) {
	if q == nil {
		return
	}
	q.Pending = append(q.Pending, cmd)
}

// Drain returns all queued commands in arrival order and empties the queue.
func (q *CommandQueue) Drain() []Command {
	if q == nil || len(q.Pending) == 0 {
		return nil
	}
	out := q.Pending
	q.Pending = nil
	return out
}

var CommandQueueComponent = NewComponent[CommandQueue]()

// HeldInput turns sampled controls into edge commands: MoveAxis when the
// axis changes, RunStart or RunEnd when run flips, and one attack per press.
type HeldInput struct {
	Move    float64
	Running bool
}

// Sample compares the new control state with the held one. A NaN axis counts
// as centred and the axis is clamped to [-1, 1]. Punch wins over kick when
// both are pressed together.
func (h *HeldInput) Sample(move float64, run, punch, kick bool) []Command {
	var cmds []Command
	if math.IsNaN(move) {
		move = 0
	}
	move = math.Max(-1, math.Min(1, move))
	if move != h.Move {
		h.Move = move
		cmds = append(cmds, MoveAxis(move))
	}
	if run != h.Running {
		h.Running = run
		if run {
			cmds = append(cmds, RunStart())
		} else {
			cmds = append(cmds, RunEnd())
		}
	}
	switch {
	case punch:
		cmds = append(cmds, Punch())
	case kick:
		cmds = append(cmds, Kick())
	}
	return cmds
}

// Release lets go of everything held.
func (h *HeldInput) Release() []Command {
	return h.Sample(0, false, false, false)
}
