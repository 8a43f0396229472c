package entity

import (
	"fmt"

	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/prefabs"
)

// NewFighter builds the fighter for one arena slot from the shared fighter
// spec. The caller still has to register the body with physics and bind it
// to the bus.
func NewFighter(w *ecs.World, spec prefabs.FighterSpec, slot prefabs.SlotSpec, policy component.FacingPolicy) (ecs.Entity, error) {
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("fighter: %w", err)
	}
	e := ecs.CreateEntity(w)

	facing := component.FacingRight
	if slot.FacingLeft {
		facing = component.FacingLeft
	}
	variant, _ := component.ParseVariant(slot.DefaultVariant)

	adds := []func() error{
		func() error {
			return ecs.Add(w, e, component.FighterComponent.Kind(), &component.Fighter{
				Slot:         slot.Slot,
				Variant:      variant,
				Facing:       facing,
				FacingPolicy: policy,
				Params:       spec.Params(),
			})
		},
		func() error {
			return ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(spec.MaxHealth))
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: slot.X, Y: slot.Y})
		},
		func() error {
			return ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: slot.X, Y: slot.Y, Facing: facing})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  spec.Collider.Width,
				Height: spec.Collider.Height,
			})
		},
		func() error {
			return ecs.Add(w, e, component.FighterStateMachineComponent.Kind(), &component.FighterStateMachine{})
		},
		func() error {
			return ecs.Add(w, e, component.CommandQueueComponent.Kind(), &component.CommandQueue{})
		},
		func() error {
			return ecs.Add(w, e, component.AnimationIntentComponent.Kind(), &component.AnimationIntent{})
		},
		func() error {
			return ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{})
		},
		func() error {
			return ecs.Add(w, e, component.SubscriptionsComponent.Kind(), &component.Subscriptions{})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("fighter: slot %d: %w", slot.Slot, err)
		}
	}
	return e, nil
}

// ApplyFighterSpec swaps in new tunables on a live fighter. Health max is
// updated but current health is left for the next reset. A new collider size
// only lands on PhysicsBody; the body has to be registered again to use it.
func ApplyFighterSpec(w *ecs.World, e ecs.Entity, spec prefabs.FighterSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("fighter: %w", err)
	}
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return component.ErrEntityNotAlive
	}
	f.Params = spec.Params()
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Max = spec.MaxHealth
		if h.Current > h.Max {
			h.Current = h.Max
		}
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Width = spec.Collider.Width
		pb.Height = spec.Collider.Height
	}
	return nil
}
