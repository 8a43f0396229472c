package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/ecs"
)

// QueryHit is one body crossed by a directional query.
type QueryHit struct {
	Entity   ecs.Entity
	Distance float64
}

// Collision is the movement and hit-query primitive the fighter controller
// consumes. Both calls are synchronous and authoritative over position.
type Collision interface {
	// Move requests a horizontal displacement for e and returns the
	// displacement actually achieved after collision response.
	Move(w *ecs.World, e ecs.Entity, dx float64) float64
	// DirectionalQuery returns every body the segment from origin along dir
	// of length maxDistance touches, nearest first.
	DirectionalQuery(w *ecs.World, origin, dir cp.Vector, maxDistance float64) []QueryHit
	// Position reports where e currently is.
	Position(w *ecs.World, e ecs.Entity) (cp.Vector, bool)
	// Bounds reports e's collider box.
	Bounds(w *ecs.World, e ecs.Entity) (cp.BB, bool)
}

// Teleporter is implemented by collision primitives that can place a body
// without collision response.
type Teleporter interface {
	Teleport(w *ecs.World, e ecs.Entity, pos cp.Vector) bool
}
