package match

import (
	"context"
	"log/slog"

	"github.com/milk9111/duel/bot"
	"github.com/milk9111/duel/ecs/component"
)

// Pilot lets a scripted bot play one slot.
type Pilot struct {
	Slot int
	Bot  *bot.Bot

	// Variant is picked for the slot when the round is locked.
	Variant component.Variant
}

// Drive selects the pilot's variant while the gate is locked and otherwise
// feeds the bot's commands into the slot's queue. Script failures are
// logged and the slot idles for that think.
func (m *Match) Drive(ctx context.Context, p *Pilot, dt float64) {
	if p == nil || p.Bot == nil {
		return
	}
	if m.Locked() {
		if _, chosen := m.gate.Selected(p.Slot); !chosen {
			v := p.Variant
			if !v.Valid() {
				v = m.DefaultVariant(p.Slot)
			}
			if err := m.SelectSlot(p.Slot, v); err != nil {
				slog.Warn("bot selection rejected", "slot", p.Slot, "bot", p.Bot.Name(), "err", err)
			}
			p.Bot.Reset()
		}
		return
	}
	obs, ok := m.Observe(p.Slot)
	if !ok {
		return
	}
	cmds, err := p.Bot.Step(ctx, obs, dt)
	if err != nil {
		slog.Error("bot step failed", "slot", p.Slot, "bot", p.Bot.Name(), "err", err)
		return
	}
	for _, cmd := range cmds {
		if err := m.Queue(p.Slot, cmd); err != nil {
			slog.Error("bot command dropped", "slot", p.Slot, "cmd", cmd.Kind.String(), "err", err)
		}
	}
}

// DefaultVariant is the arena's suggested variant for slot, monkey if the
// arena names none.
func (m *Match) DefaultVariant(slot int) component.Variant {
	if s, ok := m.arena.Slot(slot); ok {
		if v, ok := component.ParseVariant(s.DefaultVariant); ok {
			return v
		}
	}
	return component.VariantMonkey
}
