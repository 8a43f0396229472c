package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/ecs/system"
)

var (
	ErrAlreadySelected = errors.New("match: slot already selected")
	ErrInvalidSlot     = errors.New("match: invalid slot")
	ErrInvalidVariant  = errors.New("match: invalid variant")
)

const (
	GateLocked   = "locked"
	GateUnlocked = "unlocked"

	eventUnlock = "unlock"
	eventReset  = "reset"
)

// Slots is the number of players a round waits for.
const Slots = 2

type slotRecord struct {
	selected bool
	variant  component.Variant
}

// SelectionGate holds simulation time frozen until both slots have picked a
// variant. Selected is published for each pick and RoundUnlocked once per
// round, on the pick that fills the second slot.
type SelectionGate struct {
	bus   *ecs.Bus
	fsm   *fsm.FSM
	slots [Slots]slotRecord
}

func NewSelectionGate(bus *ecs.Bus) *SelectionGate {
	g := &SelectionGate{bus: bus}
	g.fsm = fsm.NewFSM(
		GateLocked,
		fsm.Events{
			{Name: eventUnlock, Src: []string{GateLocked}, Dst: GateUnlocked},
			{Name: eventReset, Src: []string{GateUnlocked}, Dst: GateLocked},
		},
		fsm.Callbacks{
			"enter_" + GateUnlocked: func(_ context.Context, _ *fsm.Event) {
				slog.Info("round unlocked", "slot1", g.slots[0].variant.String(), "slot2", g.slots[1].variant.String())
				ecs.Publish(g.bus, system.RoundUnlocked{})
			},
			"enter_" + GateLocked: func(_ context.Context, _ *fsm.Event) {
				slog.Debug("round locked")
			},
		},
	)
	return g
}

// State returns GateLocked or GateUnlocked.
func (g *SelectionGate) State() string {
	return g.fsm.Current()
}

func (g *SelectionGate) Locked() bool {
	return g.fsm.Is(GateLocked)
}

// Selected reports slot's pick, if any.
func (g *SelectionGate) Selected(slot int) (component.Variant, bool) {
	if slot < 1 || slot > Slots {
		return component.VariantNone, false
	}
	rec := g.slots[slot-1]
	return rec.variant, rec.selected
}

// Select records slot's variant. A slot already chosen this round is left
// untouched and ErrAlreadySelected returned.
func (g *SelectionGate) Select(slot int, variant component.Variant) error {
	if slot < 1 || slot > Slots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if !variant.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidVariant, variant)
	}
	rec := &g.slots[slot-1]
	if rec.selected {
		return ErrAlreadySelected
	}
	rec.selected = true
	rec.variant = variant

	slog.Info("slot selected", "slot", slot, "variant", variant.String())
	ecs.Publish(g.bus, system.Selected{Slot: slot, Variant: variant})

	if !g.allSelected() || !g.fsm.Can(eventUnlock) {
		return nil
	}
	if err := g.fsm.Event(context.Background(), eventUnlock); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return fmt.Errorf("match: unlock: %w", err)
		}
	}
	return nil
}

// Reset clears both slots, re-locks the gate and publishes RoundReset so
// fighters restore full health. Calling it repeatedly is harmless.
func (g *SelectionGate) Reset() {
	g.slots = [Slots]slotRecord{}
	if g.fsm.Can(eventReset) {
		if err := g.fsm.Event(context.Background(), eventReset); err != nil {
			var noTransition fsm.NoTransitionError
			if !errors.As(err, &noTransition) {
				slog.Error("gate reset failed", "err", err)
				g.fsm.SetState(GateLocked)
			}
		}
	}
	ecs.Publish(g.bus, system.RoundReset{})
}

func (g *SelectionGate) allSelected() bool {
	for _, rec := range g.slots {
		if !rec.selected {
			return false
		}
	}
	return true
}
