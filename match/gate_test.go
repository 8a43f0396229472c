package match

import (
	"errors"
	"testing"

	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/ecs/system"
)

type gateEvents struct {
	selected []system.Selected
	unlocked int
	resets   int
}

func watchGate(bus *ecs.Bus) *gateEvents {
	ev := &gateEvents{}
	ecs.Subscribe(bus, func(e system.Selected) { ev.selected = append(ev.selected, e) })
	ecs.Subscribe(bus, func(system.RoundUnlocked) { ev.unlocked++ })
	ecs.Subscribe(bus, func(system.RoundReset) { ev.resets++ })
	return ev
}

func TestGateUnlocksOnceBothSelected(t *testing.T) {
	bus := ecs.NewBus()
	ev := watchGate(bus)
	g := NewSelectionGate(bus)

	if !g.Locked() || g.State() != GateLocked {
		t.Fatalf("gate should start locked")
	}
	if err := g.Select(1, component.VariantSamurai); err != nil {
		t.Fatalf("select slot 1: %v", err)
	}
	if !g.Locked() || ev.unlocked != 0 {
		t.Fatalf("gate unlocked after one selection")
	}
	if err := g.Select(2, component.VariantMonkey); err != nil {
		t.Fatalf("select slot 2: %v", err)
	}
	if g.Locked() || ev.unlocked != 1 {
		t.Fatalf("expected unlocked with one RoundUnlocked, got locked=%v unlocked=%d", g.Locked(), ev.unlocked)
	}
	if len(ev.selected) != 2 || ev.selected[0].Slot != 1 || ev.selected[0].Variant != component.VariantSamurai {
		t.Fatalf("unexpected Selected events %+v", ev.selected)
	}

	// further picks are rejected and never re-announce the round
	for slot := 1; slot <= Slots; slot++ {
		if err := g.Select(slot, component.VariantMonkey); !errors.Is(err, ErrAlreadySelected) {
			t.Fatalf("slot %d: expected ErrAlreadySelected, got %v", slot, err)
		}
	}
	if ev.unlocked != 1 || len(ev.selected) != 2 {
		t.Fatalf("rejected selection published events: %+v", ev)
	}
	if v, ok := g.Selected(1); !ok || v != component.VariantSamurai {
		t.Fatalf("slot 1 selection changed to %v", v)
	}
}

func TestGateDoubleSelectBeforeUnlock(t *testing.T) {
	bus := ecs.NewBus()
	ev := watchGate(bus)
	g := NewSelectionGate(bus)

	if err := g.Select(1, component.VariantMonkey); err != nil {
		t.Fatal(err)
	}
	if err := g.Select(1, component.VariantSamurai); !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if len(ev.selected) != 1 || !g.Locked() {
		t.Fatalf("second pick had side effects: %+v locked=%v", ev, g.Locked())
	}
}

func TestGateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		slot    int
		variant component.Variant
		want    error
	}{
		{name: "slot_zero", slot: 0, variant: component.VariantMonkey, want: ErrInvalidSlot},
		{name: "slot_three", slot: 3, variant: component.VariantMonkey, want: ErrInvalidSlot},
		{name: "no_variant", slot: 1, variant: component.VariantNone, want: ErrInvalidVariant},
		{name: "unknown_variant", slot: 2, variant: component.Variant(42), want: ErrInvalidVariant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bus := ecs.NewBus()
			ev := watchGate(bus)
			g := NewSelectionGate(bus)
			if err := g.Select(tc.slot, tc.variant); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(ev.selected) != 0 {
				t.Fatalf("invalid pick published Selected")
			}
		})
	}
}

func TestGateReset(t *testing.T) {
	bus := ecs.NewBus()
	ev := watchGate(bus)
	g := NewSelectionGate(bus)

	// resetting a fresh gate is harmless
	g.Reset()
	if !g.Locked() || ev.resets != 1 {
		t.Fatalf("expected locked gate and one reset, got locked=%v resets=%d", g.Locked(), ev.resets)
	}

	_ = g.Select(1, component.VariantMonkey)
	_ = g.Select(2, component.VariantSamurai)
	g.Reset()
	g.Reset()
	if !g.Locked() {
		t.Fatalf("gate not locked after reset")
	}
	if _, ok := g.Selected(1); ok {
		t.Fatalf("slot 1 selection survived reset")
	}

	// a new round unlocks again
	if err := g.Select(2, component.VariantMonkey); err != nil {
		t.Fatalf("select after reset: %v", err)
	}
	if err := g.Select(1, component.VariantMonkey); err != nil {
		t.Fatalf("select after reset: %v", err)
	}
	if ev.unlocked != 2 {
		t.Fatalf("expected a second RoundUnlocked, got %d", ev.unlocked)
	}
}
