package entity

import (
	"fmt"

	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/prefabs"
)

// NewWall builds a static box. Walls have no health, so attacks pass
// over them to reach a fighter behind.
func NewWall(w *ecs.World, spec prefabs.WallSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
		return 0, fmt.Errorf("wall: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, fmt.Errorf("wall: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
		Static: true,
	}); err != nil {
		return 0, fmt.Errorf("wall: %w", err)
	}
	return e, nil
}

func NewArena(w *ecs.World, spec prefabs.ArenaSpec) ([]ecs.Entity, error) {
	walls := make([]ecs.Entity, 0, len(spec.Walls))
	for i, wall := range spec.Walls {
		e, err := NewWall(w, wall)
		if err != nil {
			return nil, fmt.Errorf("arena %s: wall %d: %w", spec.Name, i, err)
		}
		walls = append(walls, e)
	}
	return walls, nil
}
