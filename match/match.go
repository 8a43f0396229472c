// Package match owns one duel: the world, the event bus, the selection gate
// and the systems that advance a round.
package match

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/bot"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/ecs/entity"
	"github.com/milk9111/duel/ecs/system"
	"github.com/milk9111/duel/prefabs"
)

var ErrNoFighter = errors.New("match: no fighter in slot")

type Options struct {
	Fighter      prefabs.FighterSpec
	Arena        prefabs.ArenaSpec
	FacingPolicy component.FacingPolicy
	// Bus is optional; a fresh bus is created when nil.
	Bus *ecs.Bus
}

// LoadOptions reads the fighter and arena prefabs.
func LoadOptions(policy component.FacingPolicy) (Options, error) {
	fighter, err := prefabs.LoadFighterSpec()
	if err != nil {
		return Options{}, err
	}
	arena, err := prefabs.LoadArenaSpec()
	if err != nil {
		return Options{}, err
	}
	return Options{Fighter: fighter, Arena: arena, FacingPolicy: policy}, nil
}

type Match struct {
	world     *ecs.World
	bus       *ecs.Bus
	gate      *SelectionGate
	physics   *system.PhysicsSystem
	control   *system.FighterControllerSystem
	scheduler *ecs.Scheduler

	arena    prefabs.ArenaSpec
	fighters [Slots]ecs.Entity
	walls    []ecs.Entity

	pendingFighter *prefabs.FighterSpec
	outcome        Outcome
	subs           []*ecs.Subscription
}

// Outcome describes how a round ended. Winner is 0 for a trade.
type Outcome struct {
	Over   bool
	Winner int
}

func New(opts Options) (*Match, error) {
	if err := opts.Fighter.Validate(); err != nil {
		return nil, fmt.Errorf("match: fighter: %w", err)
	}
	if err := opts.Arena.Validate(); err != nil {
		return nil, fmt.Errorf("match: arena: %w", err)
	}
	bus := opts.Bus
	if bus == nil {
		bus = ecs.NewBus()
	}

	m := &Match{
		world:   ecs.NewWorld(),
		bus:     bus,
		physics: system.NewPhysicsSystem(),
		arena:   opts.Arena,
	}
	m.gate = NewSelectionGate(bus)
	m.control = system.NewFighterControllerSystem(m.physics, bus)
	m.scheduler = ecs.NewScheduler(
		m.control,
		system.NewSeparationSystem(m.physics, opts.Arena.PushForce),
		m.physics,
	)

	walls, err := entity.NewArena(m.world, opts.Arena)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	m.walls = walls
	for _, e := range walls {
		if err := m.physics.Register(m.world, e); err != nil {
			return nil, fmt.Errorf("match: wall: %w", err)
		}
	}

	for i := range Slots {
		slot, ok := opts.Arena.Slot(i + 1)
		if !ok {
			return nil, fmt.Errorf("match: arena %s: %w: slot %d", opts.Arena.Name, ErrInvalidSlot, i+1)
		}
		e, err := entity.NewFighter(m.world, opts.Fighter, slot, opts.FacingPolicy)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("match: %w", err)
		}
		if err := m.physics.Register(m.world, e); err != nil {
			m.Close()
			return nil, fmt.Errorf("match: slot %d: %w", slot.Slot, err)
		}
		if err := m.control.Bind(m.world, e); err != nil {
			m.Close()
			return nil, fmt.Errorf("match: slot %d: %w", slot.Slot, err)
		}
		m.control.Start(m.world, e)
		m.fighters[i] = e
	}

	m.subs = append(m.subs,
		ecs.Subscribe(bus, func(evt system.Died) { m.recordDeath(evt) }),
		ecs.Subscribe(bus, func(system.RoundReset) { m.outcome = Outcome{} }),
	)
	return m, nil
}

func (m *Match) World() *ecs.World { return m.world }
func (m *Match) Bus() *ecs.Bus { return m.bus }
func (m *Match) Gate() *SelectionGate { return m.gate }
func (m *Match) Physics() *system.PhysicsSystem { return m.physics }
func (m *Match) Walls() []ecs.Entity { return m.walls }
func (m *Match) Arena() prefabs.ArenaSpec { return m.arena }
func (m *Match) Outcome() Outcome { return m.outcome }
func (m *Match) Locked() bool { return m.gate.Locked() }
func (m *Match) SelectSlot(slot int, v component.Variant) error { return m.gate.Select(slot, v) }

// Fighter returns the entity for slot 1 or 2.
func (m *Match) Fighter(slot int) (ecs.Entity, bool) {
	if slot < 1 || slot > Slots {
		return 0, false
	}
	e := m.fighters[slot-1]
	return e, e.Valid() && ecs.IsAlive(m.world, e)
}

// Queue hands cmd to slot's fighter for the next tick. Commands sent while
// the gate is locked are dropped.
func (m *Match) Queue(slot int, cmd component.Command) error {
	e, ok := m.Fighter(slot)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoFighter, slot)
	}
	if m.gate.Locked() {
		return nil
	}
	queue, ok := ecs.Get(m.world, e, component.CommandQueueComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoFighter, slot)
	}
	queue.Push(cmd)
	return nil
}

// Tick advances the round by dt seconds. It does nothing while the gate is
// locked.
func (m *Match) Tick(dt float64) {
	if m == nil || m.gate.Locked() || dt <= 0 {
		return
	}
	m.scheduler.Update(m.world, dt)
	m.bus.Flush()
}

// ResetRound starts a fresh round: both slots need selecting again, fighters
// return to spawn at full health. A fighter spec staged by ApplyFighterSpec
// takes effect here.
func (m *Match) ResetRound() {
	if m.pendingFighter != nil {
		spec := *m.pendingFighter
		m.pendingFighter = nil
		for _, e := range m.fighters {
			if err := entity.ApplyFighterSpec(m.world, e, spec); err != nil {
				slog.Error("apply fighter spec", "fighter", e.String(), "err", err)
				continue
			}
			if err := m.physics.Register(m.world, e); err != nil {
				slog.Error("resize fighter collider", "fighter", e.String(), "err", err)
			}
		}
	}
	m.bus.Clear()
	m.gate.Reset()
}

// ApplyFighterSpec stages new tunables for the next ResetRound so a round in
// progress keeps consistent rules.
func (m *Match) ApplyFighterSpec(spec prefabs.FighterSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	m.pendingFighter = &spec
	slog.Info("fighter spec staged", "name", spec.Name)
	return nil
}

// Observe builds a bot's view of the match from slot's side.
func (m *Match) Observe(slot int) (bot.Observation, bool) {
	self, ok := m.Fighter(slot)
	if !ok {
		return bot.Observation{}, false
	}
	other, ok := m.Fighter(Slots + 1 - slot)
	if !ok {
		return bot.Observation{}, false
	}
	var obs bot.Observation
	if f, ok := ecs.Get(m.world, self, component.FighterComponent.Kind()); ok {
		obs.Range = f.Params.AttackRange
		obs.FacingLeft = f.Facing == component.FacingLeft
		obs.Attacking = f.Attacking()
		obs.Running = f.Running
		obs.Dead = f.Dead
	}
	if f, ok := ecs.Get(m.world, other, component.FighterComponent.Kind()); ok {
		obs.OtherDead = f.Dead
	}
	if pos, ok := m.physics.Position(m.world, self); ok {
		obs.SelfX = pos.X
	}
	if pos, ok := m.physics.Position(m.world, other); ok {
		obs.OtherX = pos.X
	}
	if h, ok := ecs.Get(m.world, self, component.HealthComponent.Kind()); ok {
		obs.SelfHP = h.Current
	}
	if h, ok := ecs.Get(m.world, other, component.HealthComponent.Kind()); ok {
		obs.OtherHP = h.Current
	}
	return obs, true
}

// Bounds is the box around every wall, or a default stage when the arena
// has none.
func (m *Match) Bounds() cp.BB {
	var bounds cp.BB
	found := false
	for _, e := range m.walls {
		bb, ok := m.physics.Bounds(m.world, e)
		if !ok {
			continue
		}
		if found {
			bounds = bounds.Merge(bb)
		} else {
			bounds, found = bb, true
		}
	}
	if !found {
		return cp.BB{L: -10, B: 0, R: 10, T: 6}
	}
	return bounds
}

// Close releases every bus subscription the match made.
func (m *Match) Close() {
	if m == nil {
		return
	}
	for _, e := range m.fighters {
		if e.Valid() {
			m.control.Unbind(m.world, e)
		}
	}
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
}

func (m *Match) recordDeath(evt system.Died) {
	alive := 0
	winner := 0
	for i, e := range m.fighters {
		f, ok := ecs.Get(m.world, e, component.FighterComponent.Kind())
		if !ok {
			continue
		}
		h, ok := ecs.Get(m.world, e, component.HealthComponent.Kind())
		if ok && h.Alive() && !f.Dead {
			alive++
			winner = i + 1
		}
	}
	if alive > 1 {
		return
	}
	if alive == 0 {
		winner = 0
	}
	if !m.outcome.Over {
		slog.Info("round over", "winner", winner, "last_death", evt.Slot)
	}
	m.outcome = Outcome{Over: true, Winner: winner}
}
