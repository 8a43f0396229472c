package system

import "github.com/milk9111/duel/ecs/component"

const (
	StateIdle    = "idle"
	StateMoving  = "moving"
	StateRunning = "running"
	StatePunch   = "punch"
	StateKick    = "kick"
	StateDead    = "dead"
)

// Fighter state singletons (avoid allocations on transitions).
var (
	fighterStateIdle    component.FighterState = &fighterIdleState{}
	fighterStateMoving  component.FighterState = &fighterMovingState{}
	fighterStateRunning component.FighterState = &fighterRunningState{}
	fighterStatePunch   component.FighterState = &fighterAttackState{kind: component.AttackPunch}
	fighterStateKick    component.FighterState = &fighterAttackState{kind: component.AttackKick}
	fighterStateDead    component.FighterState = &fighterDeadState{}
)

type fighterIdleState struct{}

type fighterMovingState struct{}

type fighterRunningState struct{}

type fighterAttackState struct {
	kind component.AttackKind
}

type fighterDeadState struct{}

// handleGroundCommand is shared by idle and moving, which accept every command.
func handleGroundCommand(ctx *component.FighterStateContext, cmd component.Command) {
	if ctx == nil || ctx.Fighter == nil || ctx.ChangeState == nil {
		return
	}
	switch cmd.Kind {
	case component.CommandMoveAxis:
		ctx.Fighter.SetMoveInput(cmd.Value)
		if ctx.Fighter.FacingPolicy == component.FacingWhileMoving {
			ctx.Fighter.Face(ctx.Fighter.MoveInput)
		}
	case component.CommandRunStart:
		ctx.ChangeState(fighterStateRunning)
	case component.CommandRunEnd:
		ctx.Fighter.Running = false
	case component.CommandPunch:
		tryAttack(ctx, fighterStatePunch)
	case component.CommandKick:
		tryAttack(ctx, fighterStateKick)
	}
}

func tryAttack(ctx *component.FighterStateContext, attack component.FighterState) {
	if !ctx.Fighter.CanAttack() {
		return
	}
	ctx.ChangeState(attack)
}

// integrateMovement turns the fighter if allowed and requests this tick's
// horizontal displacement.
func integrateMovement(ctx *component.FighterStateContext, turn bool) {
	f := ctx.Fighter
	if turn {
		f.Face(f.MoveInput)
	}
	dx := f.MoveInput * f.Speed() * ctx.DT
	if dx != 0 && ctx.Move != nil {
		ctx.Move(dx)
	}
}

func issue(ctx *component.FighterStateContext, action component.Action, context component.MovementContext) {
	if ctx.IssueIntent != nil {
		ctx.IssueIntent(action, context)
	}
}

func (fighterIdleState) Name() string { return StateIdle }
func (fighterIdleState) Enter(ctx *component.FighterStateContext) {
	issue(ctx, component.ActionIdle, component.ContextNone)
}
func (fighterIdleState) Exit(ctx *component.FighterStateContext) {}
func (fighterIdleState) HandleCommand(ctx *component.FighterStateContext, cmd component.Command) {
	handleGroundCommand(ctx, cmd)
}
func (fighterIdleState) Update(ctx *component.FighterStateContext) {
	if ctx == nil || ctx.Fighter == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Fighter.MoveInput != 0 {
		ctx.ChangeState(fighterStateMoving)
		fighterStateMoving.Update(ctx)
	}
}

func (fighterMovingState) Name() string { return StateMoving }
func (fighterMovingState) Enter(ctx *component.FighterStateContext) {
	issue(ctx, component.ActionWalk, component.ContextWalking)
}
func (fighterMovingState) Exit(ctx *component.FighterStateContext) {}
func (fighterMovingState) HandleCommand(ctx *component.FighterStateContext, cmd component.Command) {
	handleGroundCommand(ctx, cmd)
}
func (fighterMovingState) Update(ctx *component.FighterStateContext) {
	if ctx == nil || ctx.Fighter == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Fighter.MoveInput == 0 {
		ctx.ChangeState(fighterStateIdle)
		return
	}
	integrateMovement(ctx, ctx.Fighter.FacingPolicy == component.FacingWhileMoving)
}

func (fighterRunningState) Name() string { return StateRunning }
func (fighterRunningState) Enter(ctx *component.FighterStateContext) {
	context := component.ContextNone
	if ctx.Fighter.MoveInput != 0 {
		context = component.ContextWalking
	}
	ctx.Fighter.Running = true
	issue(ctx, component.ActionRun, context)
}
func (fighterRunningState) Exit(ctx *component.FighterStateContext) {
	ctx.Fighter.Running = false
}
func (fighterRunningState) HandleCommand(ctx *component.FighterStateContext, cmd component.Command) {
	if ctx == nil || ctx.Fighter == nil || ctx.ChangeState == nil {
		return
	}
	switch cmd.Kind {
	case component.CommandMoveAxis:
		ctx.Fighter.SetMoveInput(cmd.Value)
		ctx.Fighter.Face(ctx.Fighter.MoveInput)
	case component.CommandRunEnd:
		if ctx.Fighter.MoveInput != 0 {
			ctx.ChangeState(fighterStateMoving)
		} else {
			ctx.ChangeState(fighterStateIdle)
		}
	}
	// running actors cannot attack; RunStart is already satisfied
}
func (fighterRunningState) Update(ctx *component.FighterStateContext) {
	if ctx == nil || ctx.Fighter == nil {
		return
	}
	if ctx.Fighter.MoveInput == 0 {
		return
	}
	integrateMovement(ctx, true)
}

func (s *fighterAttackState) Name() string {
	if s.kind == component.AttackKick {
		return StateKick
	}
	return StatePunch
}
func (s *fighterAttackState) Enter(ctx *component.FighterStateContext) {
	f := ctx.Fighter
	if s.kind == component.AttackKick {
		f.Kicking = true
		f.KickElapsed = 0
	} else {
		f.Punching = true
		f.PunchElapsed = 0
	}
	issue(ctx, s.kind.Action(), f.MovementContext())
	f.PendingHit = s.kind
	f.HitPending = true
	if ctx.StartAttack != nil {
		ctx.StartAttack(s.kind)
	}
}
func (s *fighterAttackState) Exit(ctx *component.FighterStateContext) {
	if s.kind == component.AttackKick {
		ctx.Fighter.Kicking = false
	} else {
		ctx.Fighter.Punching = false
	}
}
func (s *fighterAttackState) HandleCommand(ctx *component.FighterStateContext, cmd component.Command) {
	if ctx == nil || ctx.Fighter == nil {
		return
	}
	switch cmd.Kind {
	case component.CommandMoveAxis:
		ctx.Fighter.SetMoveInput(cmd.Value)
	case component.CommandRunEnd:
		ctx.Fighter.Running = false
	}
}
func (s *fighterAttackState) Update(ctx *component.FighterStateContext) {
	if ctx == nil || ctx.Fighter == nil || ctx.ChangeState == nil {
		return
	}
	f := ctx.Fighter
	elapsed := &f.PunchElapsed
	if s.kind == component.AttackKick {
		elapsed = &f.KickElapsed
	}
	*elapsed += ctx.DT
	if *elapsed >= f.Params.Duration(s.kind) {
		ctx.ChangeState(fighterStateIdle)
	}
}

func (fighterDeadState) Name() string { return StateDead }
func (fighterDeadState) Enter(ctx *component.FighterStateContext) {
	f := ctx.Fighter
	f.Dead = true
	f.MoveInput = 0
	f.Running = false
	f.Punching = false
	f.Kicking = false
	f.HitPending = false
	f.DeadElapsed = 0
	issue(ctx, component.ActionDeath, component.ContextNone)
	if f.Params.DeathDisableDelay <= 0 && ctx.SetColliderEnabled != nil {
		ctx.SetColliderEnabled(false)
	}
}
func (fighterDeadState) Exit(ctx *component.FighterStateContext) {}
func (fighterDeadState) HandleCommand(ctx *component.FighterStateContext, cmd component.Command) {}
func (fighterDeadState) Update(ctx *component.FighterStateContext) {
	if ctx == nil || ctx.Fighter == nil {
		return
	}
	f := ctx.Fighter
	delay := f.Params.DeathDisableDelay
	before := f.DeadElapsed
	f.DeadElapsed += ctx.DT
	if delay > 0 && before < delay && f.DeadElapsed >= delay && ctx.SetColliderEnabled != nil {
		ctx.SetColliderEnabled(false)
	}
}
