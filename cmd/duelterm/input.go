package main

import (
	"time"
	"unicode"

	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/match"
)

// defaultHold is how long a direction stays held after its last press or
// repeat. Terminals send no key-up, so holding is inferred from autorepeat.
const defaultHold = 550 * time.Millisecond

type termBinding struct {
	left    rune
	right   rune
	punch   rune
	kick    rune
	monkey  rune
	samurai rune
}

var termBindings = [match.Slots]termBinding{
	{left: 'a', right: 'd', punch: 'f', kick: 'g', monkey: '1', samurai: '2'},
	{left: 'j', right: 'l', punch: 'u', kick: 'i', monkey: '9', samurai: '0'},
}

// termInput tracks one slot's keys. Shifted directions run.
type termInput struct {
	bind termBinding
	hold time.Duration

	leftAt  time.Time
	rightAt time.Time
	runAt   time.Time
	punch   bool
	kick    bool

	held component.HeldInput
}

func newTermInput(bind termBinding, hold time.Duration) *termInput {
	if hold <= 0 {
		hold = defaultHold
	}
	return &termInput{bind: bind, hold: hold}
}

// key records a keypress and reports whether it belonged to this slot.
func (in *termInput) key(r rune, now time.Time) bool {
	lower := unicode.ToLower(r)
	shifted := lower != r
	switch lower {
	case in.bind.left:
		in.leftAt = now
		in.rightAt = time.Time{}
	case in.bind.right:
		in.rightAt = now
		in.leftAt = time.Time{}
	case in.bind.punch:
		in.punch = true
		return true
	case in.bind.kick:
		in.kick = true
		return true
	default:
		return false
	}
	if shifted {
		in.runAt = now
	} else {
		in.runAt = time.Time{}
	}
	return true
}

func (in *termInput) pick(r rune) (component.Variant, bool) {
	switch r {
	case in.bind.monkey:
		return component.VariantMonkey, true
	case in.bind.samurai:
		return component.VariantSamurai, true
	}
	return component.VariantNone, false
}

func (in *termInput) fresh(at, now time.Time) bool {
	return !at.IsZero() && now.Sub(at) < in.hold
}

// sample converts the keys seen so far into commands and consumes any
// pending attack.
func (in *termInput) sample(now time.Time) []component.Command {
	move := 0.0
	if in.fresh(in.leftAt, now) {
		move = -1
	}
	if in.fresh(in.rightAt, now) {
		move = 1
	}
	run := move != 0 && in.fresh(in.runAt, now)
	punch, kick := in.punch, in.kick
	in.punch, in.kick = false, false
	return in.held.Sample(move, run, punch, kick)
}

// clear forgets everything, for a new round or while selection is open.
func (in *termInput) clear() {
	in.leftAt, in.rightAt, in.runAt = time.Time{}, time.Time{}, time.Time{}
	in.punch, in.kick = false, false
	in.held = component.HeldInput{}
}
