package component

// FighterState defines the interface for fighter state machine states.
// Each state owns its own enter/exit, command handling, and update logic.
type FighterState interface {
	Name() string
	Enter(ctx *FighterStateContext)
	Exit(ctx *FighterStateContext)
	HandleCommand(ctx *FighterStateContext, cmd Command)
	Update(ctx *FighterStateContext)
}

// FighterStateContext gives a state access to its fighter and to the world
// through callbacks, so states never import the ECS package.
type FighterStateContext struct {
	Fighter *Fighter
	DT      float64

	ChangeState        func(state FighterState)
	IssueIntent        func(action Action, context MovementContext)
	Move               func(dx float64) float64
	StartAttack        func(kind AttackKind)
	SetColliderEnabled func(enabled bool)
}

// FighterStateMachine stores the active state for a fighter.
type FighterStateMachine struct {
	State FighterState
}

// Is reports whether the active state has the given name.
func (m *FighterStateMachine) Is(name string) bool {
	return m != nil && m.State != nil && m.State.Name() == name
}

var FighterStateMachineComponent = NewComponent[FighterStateMachine]()
