package system

import (
	"log/slog"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

// FighterControllerSystem runs each fighter's state machine. A tick drains
// every fighter's queued commands first, in slot order, and then advances
// every state: attack timers, attack expiry and movement.
type FighterControllerSystem struct {
	collision Collision
	bus       *ecs.Bus
}

func NewFighterControllerSystem(collision Collision, bus *ecs.Bus) *FighterControllerSystem {
	return &FighterControllerSystem{collision: collision, bus: bus}
}

func (s *FighterControllerSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}
	fighters := s.Fighters(w)
	for _, e := range fighters {
		if motion, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
			motion.Clear()
		}
		s.handleCommands(w, e, dt)
	}
	for _, e := range fighters {
		machine, ctx := s.context(w, e, dt)
		if machine == nil || machine.State == nil {
			continue
		}
		machine.State.Update(ctx)
	}
	for _, e := range fighters {
		s.resolvePendingHit(w, e)
	}
}

// resolvePendingHit lands an attack started this tick against where the
// target stands after movement.
func (s *FighterControllerSystem) resolvePendingHit(w *ecs.World, e ecs.Entity) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok || !f.HitPending {
		return
	}
	f.HitPending = false
	if f.Dead {
		return
	}
	ResolveHit(w, s.collision, s.bus, e, f.PendingHit)
}

// Fighters returns the operable fighters in slot order. Fighters missing a
// collider or health are marked inoperable and logged once.
func (s *FighterControllerSystem) Fighters(w *ecs.World) []ecs.Entity {
	type slotted struct {
		e    ecs.Entity
		slot int
	}
	var list []slotted
	ecs.ForEach(w, component.FighterComponent.Kind(), func(e ecs.Entity, f *component.Fighter) {
		if ecs.Has(w, e, component.InoperableComponent.Kind()) {
			return
		}
		if reason := s.validate(w, e); reason != "" {
			markInoperable(w, e, f, reason)
			return
		}
		list = append(list, slotted{e: e, slot: f.Slot})
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].slot < list[j].slot })

	out := make([]ecs.Entity, 0, len(list))
	for _, item := range list {
		out = append(out, item.e)
	}
	return out
}

func (s *FighterControllerSystem) validate(w *ecs.World, e ecs.Entity) string {
	if s.collision == nil {
		return "no collision primitive"
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil || pb.Shape == nil {
		return "missing physics body"
	}
	if !ecs.Has(w, e, component.HealthComponent.Kind()) {
		return "missing health"
	}
	return ""
}

func markInoperable(w *ecs.World, e ecs.Entity, f *component.Fighter, reason string) {
	_ = ecs.Add(w, e, component.InoperableComponent.Kind(), &component.Inoperable{Reason: reason})
	slog.Warn("fighter inoperable", "fighter", e.String(), "slot", f.Slot, "reason", reason)
}

func (s *FighterControllerSystem) handleCommands(w *ecs.World, e ecs.Entity, dt float64) {
	queue, ok := ecs.Get(w, e, component.CommandQueueComponent.Kind())
	if !ok {
		return
	}
	cmds := queue.Drain()
	if len(cmds) == 0 {
		return
	}
	machine, ctx := s.context(w, e, dt)
	if machine == nil || machine.State == nil {
		return
	}
	for _, cmd := range cmds {
		machine.State.HandleCommand(ctx, cmd)
	}
}

// context builds the callback context for e, starting its state machine in
// idle if it has not run yet.
func (s *FighterControllerSystem) context(w *ecs.World, e ecs.Entity, dt float64) (*component.FighterStateMachine, *component.FighterStateContext) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return nil, nil
	}
	machine, ok := ecs.Get(w, e, component.FighterStateMachineComponent.Kind())
	if !ok {
		machine = &component.FighterStateMachine{}
		if err := ecs.Add(w, e, component.FighterStateMachineComponent.Kind(), machine); err != nil {
			return nil, nil
		}
	}

	ctx := &component.FighterStateContext{Fighter: f, DT: dt}
	ctx.ChangeState = func(next component.FighterState) {
		if next == nil || machine.State == next || machine.Is(StateDead) {
			return
		}
		if machine.State != nil {
			machine.State.Exit(ctx)
		}
		machine.State = next
		next.Enter(ctx)
	}
	ctx.IssueIntent = func(action component.Action, context component.MovementContext) {
		anim, ok := ecs.Get(w, e, component.AnimationIntentComponent.Kind())
		if !ok {
			anim = &component.AnimationIntent{}
			if err := ecs.Add(w, e, component.AnimationIntentComponent.Kind(), anim); err != nil {
				return
			}
		}
		anim.Issue(IntentFor(action, context, f.Variant))
	}
	ctx.Move = func(dx float64) float64 {
		achieved := s.collision.Move(w, e, dx)
		if motion, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
			motion.Requested += dx
			motion.Achieved += achieved
		}
		return achieved
	}
	ctx.StartAttack = func(kind component.AttackKind) {
		var intent component.IntentID
		if anim, ok := ecs.Get(w, e, component.AnimationIntentComponent.Kind()); ok {
			intent = anim.Current
		}
		ecs.Publish(s.bus, AttackStarted{Fighter: e, Slot: f.Slot, Kind: kind, Intent: intent})
	}
	ctx.SetColliderEnabled = func(enabled bool) {
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			pb.Disabled = !enabled
		}
	}

	if machine.State == nil {
		machine.State = fighterStateIdle
		machine.State.Enter(ctx)
	}
	return machine, ctx
}

// Start puts e into idle and issues its first intent. Running a tick does
// this implicitly.
func (s *FighterControllerSystem) Start(w *ecs.World, e ecs.Entity) {
	s.context(w, e, 0)
}

// Kill moves e to its terminal dead state. Repeated calls are no-ops.
func (s *FighterControllerSystem) Kill(w *ecs.World, e ecs.Entity) {
	if s == nil || w == nil {
		return
	}
	machine, ctx := s.context(w, e, 0)
	if machine == nil || machine.Is(StateDead) {
		return
	}
	ctx.ChangeState(fighterStateDead)
	slog.Info("fighter died", "fighter", e.String(), "slot", ctx.Fighter.Slot)
}

// Reset returns e to a fresh round: full health, spawn position and facing,
// collider enabled, empty queue, idle state.
func (s *FighterControllerSystem) Reset(w *ecs.World, e ecs.Entity) {
	if s == nil || w == nil {
		return
	}
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	f.MoveInput = 0
	f.Running = false
	f.Punching = false
	f.Kicking = false
	f.HitPending = false
	f.Dead = false
	f.PunchElapsed = 0
	f.KickElapsed = 0
	f.DeadElapsed = 0

	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Reset()
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Disabled = false
	}
	if spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind()); ok {
		f.Facing = spawn.Facing
		if tp, ok := s.collision.(Teleporter); ok {
			tp.Teleport(w, e, cp.Vector{X: spawn.X, Y: spawn.Y})
		}
	}
	if queue, ok := ecs.Get(w, e, component.CommandQueueComponent.Kind()); ok {
		queue.Drain()
	}
	if motion, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
		motion.Clear()
	}
	if machine, ok := ecs.Get(w, e, component.FighterStateMachineComponent.Kind()); ok {
		machine.State = nil
	}
	s.Start(w, e)
}

// Bind wires e to the bus: its health's death signal enqueues Died, and it
// listens for its own Died, its slot's Selected and RoundReset. The handles
// are stored on e and released by Unbind.
func (s *FighterControllerSystem) Bind(w *ecs.World, e ecs.Entity) error {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return component.ErrEntityNotAlive
	}
	subs, ok := ecs.Get(w, e, component.SubscriptionsComponent.Kind())
	if !ok {
		subs = &component.Subscriptions{}
		if err := ecs.Add(w, e, component.SubscriptionsComponent.Kind(), subs); err != nil {
			return err
		}
	}

	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		slot := f.Slot
		bus := s.bus
		h.OnDeath = func(*component.Health) {
			ecs.Enqueue(bus, Died{Fighter: e, Slot: slot})
		}
	}

	died := ecs.Subscribe(s.bus, func(evt Died) {
		if evt.Fighter == e {
			s.Kill(w, e)
		}
	})
	selected := ecs.Subscribe(s.bus, func(evt Selected) {
		if evt.Slot != f.Slot || !evt.Variant.Valid() {
			return
		}
		f.Variant = evt.Variant
		if anim, ok := ecs.Get(w, e, component.AnimationIntentComponent.Kind()); ok {
			anim.Issue(IntentFor(component.ActionIdle, component.ContextNone, f.Variant))
		}
	})
	reset := ecs.Subscribe(s.bus, func(RoundReset) {
		s.Reset(w, e)
	})
	subs.Add(died.Unsubscribe)
	subs.Add(selected.Unsubscribe)
	subs.Add(reset.Unsubscribe)
	return nil
}

// Unbind releases every handler Bind registered for e.
func (s *FighterControllerSystem) Unbind(w *ecs.World, e ecs.Entity) {
	if subs, ok := ecs.Get(w, e, component.SubscriptionsComponent.Kind()); ok {
		subs.ReleaseAll()
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.OnDeath = nil
	}
}
