package system

import (
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

// Selected is published when a slot locks in its variant.
type Selected struct {
	Slot    int
	Variant component.Variant
}

// RoundUnlocked is published once per round, when both slots are selected.
type RoundUnlocked struct{}

// RoundReset is published whenever the round is reset to selection.
type RoundReset struct{}

// Died is delivered once per fighter per round, at the flush of the tick in
// which its health first reached zero.
type Died struct {
	Fighter ecs.Entity
	Slot    int
}

// Damaged is published when an attack lands.
type Damaged struct {
	Attacker  ecs.Entity
	Target    ecs.Entity
	Kind      component.AttackKind
	Amount    float64
	Remaining float64
}

// AttackStarted is published when a fighter enters an attack, hit or whiff.
type AttackStarted struct {
	Fighter ecs.Entity
	Slot    int
	Kind    component.AttackKind
	Intent  component.IntentID
}
