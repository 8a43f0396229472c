package component

import "math"

// FacingPolicy controls which locomotion states turn a fighter around.
type FacingPolicy int

const (
	// FacingWhileMoving updates facing on nonzero input while moving or running.
	FacingWhileMoving FacingPolicy = iota
	// FacingWhileRunning only turns the fighter while running.
	FacingWhileRunning
)

// ParseFacingPolicy accepts "moving" and "run".
func ParseFacingPolicy(s string) (FacingPolicy, bool) {
	switch s {
	case "", "moving":
		return FacingWhileMoving, true
	case "run", "running":
		return FacingWhileRunning, true
	default:
		return FacingWhileMoving, false
	}
}

// FighterParams are the static combat tunables loaded from the fighter prefab.
type FighterParams struct {
	WalkSpeed          float64
	RunSpeedMultiplier float64
	PunchDamage        float64
	KickDamage         float64
	AttackRange        float64
	PunchDuration      float64
	KickDuration       float64
	DeathDisableDelay  float64
}

func DefaultFighterParams() FighterParams {
	return FighterParams{
		WalkSpeed:          3,
		RunSpeedMultiplier: 3.75,
		PunchDamage:        10,
		KickDamage:         20,
		AttackRange:        1.5,
		PunchDuration:      0.5,
		KickDuration:       0.7,
		DeathDisableDelay:  0.5,
	}
}

func (p FighterParams) Damage(kind AttackKind) float64 {
	if kind == AttackKick {
		return p.KickDamage
	}
	return p.PunchDamage
}

func (p FighterParams) Duration(kind AttackKind) float64 {
	if kind == AttackKick {
		return p.KickDuration
	}
	return p.PunchDuration
}

// Fighter is the per-slot combat state the controller owns. Position lives in
// the physics body and is never copied here.
type Fighter struct {
	Slot         int
	Variant      Variant
	Facing       Facing
	FacingPolicy FacingPolicy
	Params       FighterParams

	MoveInput float64
	Running   bool
	Punching  bool
	Kicking   bool
	Dead      bool

	PunchElapsed float64
	KickElapsed  float64
	DeadElapsed  float64

	// PendingHit is resolved once every fighter has moved this tick.
	PendingHit AttackKind
	HitPending bool
}

// CanAttack holds when the fighter is alive, not mid-attack and not running.
func (f *Fighter) CanAttack() bool {
	return f != nil && !f.Dead && !f.Punching && !f.Kicking && !f.Running
}

func (f *Fighter) Attacking() bool {
	return f != nil && (f.Punching || f.Kicking)
}

// Speed is the horizontal speed for the current tick.
func (f *Fighter) Speed() float64 {
	if f == nil || f.Dead {
		return 0
	}
	if f.Running {
		return f.Params.WalkSpeed * f.Params.RunSpeedMultiplier
	}
	return f.Params.WalkSpeed
}

// MovementContext reports how the fighter is moving right now, for composing
// attack and run intents.
func (f *Fighter) MovementContext() MovementContext {
	switch {
	case f == nil:
		return ContextNone
	case f.Running:
		return ContextRunning
	case f.MoveInput != 0:
		return ContextWalking
	default:
		return ContextNone
	}
}

// SetMoveInput stores v clamped to [-1, 1]. NaN is treated as 0.
func (f *Fighter) SetMoveInput(v float64) {
	if f == nil {
		return
	}
	if math.IsNaN(v) {
		v = 0
	}
	f.MoveInput = math.Max(-1, math.Min(1, v))
}

// Face turns the fighter toward the sign of x. Zero leaves facing alone.
func (f *Fighter) Face(x float64) {
	if f == nil || f.Dead {
		return
	}
	if x > 0 {
		f.Facing = FacingRight
	} else if x < 0 {
		f.Facing = FacingLeft
	}
}

var FighterComponent = NewComponent[Fighter]()
