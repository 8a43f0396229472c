package system

import (
	"math"
	"testing"

	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

const testGroundY = 0.9

// rig runs the combat systems in the same order as a match tick.
type rig struct {
	w    *ecs.World
	bus  *ecs.Bus
	ps   *PhysicsSystem
	ctrl *FighterControllerSystem
	sep  *SeparationSystem
}

func newRig(t *testing.T) *rig {
	t.Helper()
	bus := ecs.NewBus()
	ps := NewPhysicsSystem()
	return &rig{
		w:    ecs.NewWorld(),
		bus:  bus,
		ps:   ps,
		ctrl: NewFighterControllerSystem(ps, bus),
		sep:  NewSeparationSystem(ps, DefaultPushForce),
	}
}

func (r *rig) fighter(t *testing.T, slot int, x float64, facing component.Facing) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(r.w)
	mustAdd(t, r.w, e, component.FighterComponent.Kind(), &component.Fighter{
		Slot:    slot,
		Variant: component.VariantMonkey,
		Facing:  facing,
		Params:  component.DefaultFighterParams(),
	})
	mustAdd(t, r.w, e, component.HealthComponent.Kind(), component.NewHealth(100))
	mustAdd(t, r.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: testGroundY})
	mustAdd(t, r.w, e, component.SpawnComponent.Kind(), &component.Spawn{X: x, Y: testGroundY, Facing: facing})
	mustAdd(t, r.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 0.6, Height: 1.8})
	mustAdd(t, r.w, e, component.FighterStateMachineComponent.Kind(), &component.FighterStateMachine{})
	mustAdd(t, r.w, e, component.CommandQueueComponent.Kind(), &component.CommandQueue{})
	mustAdd(t, r.w, e, component.AnimationIntentComponent.Kind(), &component.AnimationIntent{})
	mustAdd(t, r.w, e, component.MotionComponent.Kind(), &component.Motion{})
	mustAdd(t, r.w, e, component.SubscriptionsComponent.Kind(), &component.Subscriptions{})
	if err := r.ps.Register(r.w, e); err != nil {
		t.Fatalf("register fighter: %v", err)
	}
	if err := r.ctrl.Bind(r.w, e); err != nil {
		t.Fatalf("bind fighter: %v", err)
	}
	r.ctrl.Start(r.w, e)
	return e
}

func (r *rig) wall(t *testing.T, x, width float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(r.w)
	mustAdd(t, r.w, e, component.WallTagComponent.Kind(), &component.WallTag{})
	mustAdd(t, r.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: testGroundY})
	mustAdd(t, r.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: 6, Static: true})
	if err := r.ps.Register(r.w, e); err != nil {
		t.Fatalf("register wall: %v", err)
	}
	return e
}

func (r *rig) send(t *testing.T, e ecs.Entity, cmds ...component.Command) {
	t.Helper()
	q, ok := ecs.Get(r.w, e, component.CommandQueueComponent.Kind())
	if !ok {
		t.Fatalf("fighter %v has no command queue", e)
	}
	for _, cmd := range cmds {
		q.Push(cmd)
	}
}

func (r *rig) tick(dt float64) {
	r.ctrl.Update(r.w, dt)
	r.sep.Update(r.w, dt)
	r.ps.Update(r.w, dt)
	r.bus.Flush()
}

func (r *rig) x(t *testing.T, e ecs.Entity) float64 {
	t.Helper()
	pos, ok := r.ps.Position(r.w, e)
	if !ok {
		t.Fatalf("no position for %v", e)
	}
	return pos.X
}

func (r *rig) state(t *testing.T, e ecs.Entity) string {
	t.Helper()
	m, ok := ecs.Get(r.w, e, component.FighterStateMachineComponent.Kind())
	if !ok || m.State == nil {
		t.Fatalf("no state for %v", e)
	}
	return m.State.Name()
}

func (r *rig) intent(t *testing.T, e ecs.Entity) component.IntentID {
	t.Helper()
	a, ok := ecs.Get(r.w, e, component.AnimationIntentComponent.Kind())
	if !ok {
		t.Fatalf("no animation intent for %v", e)
	}
	return a.Current
}

func (r *rig) fighterOf(t *testing.T, e ecs.Entity) *component.Fighter {
	t.Helper()
	f, ok := ecs.Get(r.w, e, component.FighterComponent.Kind())
	if !ok {
		t.Fatalf("no fighter for %v", e)
	}
	return f
}

func (r *rig) health(t *testing.T, e ecs.Entity) *component.Health {
	t.Helper()
	h, ok := ecs.Get(r.w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("no health for %v", e)
	}
	return h
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
