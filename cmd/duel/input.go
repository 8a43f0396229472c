package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/match"
)

const stickDeadzone = 0.2

type binding struct {
	left    ebiten.Key
	right   ebiten.Key
	run     ebiten.Key
	punch   ebiten.Key
	kick    ebiten.Key
	monkey  ebiten.Key
	samurai ebiten.Key
	// gamepad indexes ebiten.GamepadIDs.
	gamepad int
}

var bindings = [match.Slots]binding{
	{
		left:    ebiten.KeyA,
		right:   ebiten.KeyD,
		run:     ebiten.KeyShiftLeft,
		punch:   ebiten.KeyF,
		kick:    ebiten.KeyG,
		monkey:  ebiten.KeyDigit1,
		samurai: ebiten.KeyDigit2,
		gamepad: 0,
	},
	{
		left:    ebiten.KeyArrowLeft,
		right:   ebiten.KeyArrowRight,
		run:     ebiten.KeyShiftRight,
		punch:   ebiten.KeyK,
		kick:    ebiten.KeyL,
		monkey:  ebiten.KeyDigit9,
		samurai: ebiten.KeyDigit0,
		gamepad: 1,
	},
}

type slotInput struct {
	bind binding
	held component.HeldInput
}

// poll samples the keyboard and the slot's gamepad and returns the commands
// for whatever changed since the last frame.
func (in *slotInput) poll(gamepads []ebiten.GamepadID) []component.Command {
	move := 0.0
	if ebiten.IsKeyPressed(in.bind.left) {
		move -= 1
	}
	if ebiten.IsKeyPressed(in.bind.right) {
		move += 1
	}
	run := ebiten.IsKeyPressed(in.bind.run)
	punch := inpututil.IsKeyJustPressed(in.bind.punch)
	kick := inpututil.IsKeyJustPressed(in.bind.kick)

	if in.bind.gamepad < len(gamepads) {
		id := gamepads[in.bind.gamepad]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			move = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			move = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			move = 1
		}
		run = run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		punch = punch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		kick = kick || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	return in.held.Sample(move, run, punch, kick)
}

// pick reports a variant chosen with the keyboard this frame.
func (in *slotInput) pick() (component.Variant, bool) {
	switch {
	case inpututil.IsKeyJustPressed(in.bind.monkey):
		return component.VariantMonkey, true
	case inpututil.IsKeyJustPressed(in.bind.samurai):
		return component.VariantSamurai, true
	}
	return component.VariantNone, false
}
