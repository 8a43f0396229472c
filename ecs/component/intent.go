package component

// Variant is the character a slot plays as. It is assigned by the selection
// gate and never inferred from names or tags.
type Variant int

const (
	VariantNone Variant = iota
	VariantMonkey
	VariantSamurai
)

func (v Variant) String() string {
	switch v {
	case VariantMonkey:
		return "monkey"
	case VariantSamurai:
		return "samurai"
	default:
		return "none"
	}
}

func (v Variant) Valid() bool {
	return v == VariantMonkey || v == VariantSamurai
}

// ParseVariant accepts the lower-case names used in prefabs and config.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "monkey":
		return VariantMonkey, true
	case "samurai":
		return VariantSamurai, true
	default:
		return VariantNone, false
	}
}

type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Sign is +1 for right and -1 for left.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Action is the base animation an intent is built from.
type Action int

const (
	ActionIdle Action = iota
	ActionWalk
	ActionRun
	ActionPunch
	ActionKick
	ActionDeath
	actionCount
)

// ActionCount is the number of defined actions.
const ActionCount = int(actionCount)

type MovementContext int

const (
	ContextNone MovementContext = iota
	ContextWalking
	ContextRunning
	contextCount
)

const MovementContextCount = int(contextCount)

// IntentID names an animation the presentation layer should play.
type IntentID string

type AttackKind int

const (
	AttackPunch AttackKind = iota
	AttackKick
)

func (k AttackKind) String() string {
	if k == AttackKick {
		return "kick"
	}
	return "punch"
}

// Action maps an attack kind to its animation action.
func (k AttackKind) Action() Action {
	if k == AttackKick {
		return ActionKick
	}
	return ActionPunch
}
