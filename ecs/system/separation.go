package system

import (
	"sort"

	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

const DefaultPushForce = 5.0

// SeparationSystem keeps the two fighters from walking through each other.
// When their colliders touch, a fighter whose requested motion this tick
// pointed at the other shoves it away along x by PushForce*dt. Overlap with
// no aggressor is split evenly. Every push goes through Collision.Move so
// walls still clamp it.
type SeparationSystem struct {
	collision Collision
	PushForce float64
}

func NewSeparationSystem(collision Collision, pushForce float64) *SeparationSystem {
	if pushForce <= 0 {
		pushForce = DefaultPushForce
	}
	return &SeparationSystem{collision: collision, PushForce: pushForce}
}

type separationBody struct {
	e      ecs.Entity
	slot   int
	motion float64
}

func (s *SeparationSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil || s.collision == nil || dt <= 0 {
		return
	}
	bodies := s.bodies(w)
	if len(bodies) != 2 {
		return
	}
	a, b := bodies[0], bodies[1]

	bbA, okA := s.collision.Bounds(w, a.e)
	bbB, okB := s.collision.Bounds(w, b.e)
	if !okA || !okB {
		return
	}
	bbA.L -= contactSkin
	bbA.R += contactSkin
	if !bbA.Intersects(bbB) {
		return
	}

	posA, _ := s.collision.Position(w, a.e)
	posB, _ := s.collision.Position(w, b.e)
	dir := 1.0 // a toward b
	if posB.X < posA.X {
		dir = -1
	}

	push := s.PushForce * dt
	aggressorA := a.motion*dir > 0
	aggressorB := b.motion*-dir > 0
	if aggressorA {
		s.collision.Move(w, b.e, dir*push)
	}
	if aggressorB {
		s.collision.Move(w, a.e, -dir*push)
	}
	if aggressorA || aggressorB {
		return
	}

	// only separate idle bodies that actually interpenetrate
	var depth float64
	if dir > 0 {
		depth = bbA.R - contactSkin - bbB.L
	} else {
		depth = bbB.R - (bbA.L + contactSkin)
	}
	if depth <= contactSkin {
		return
	}
	s.collision.Move(w, a.e, -dir*push/2)
	s.collision.Move(w, b.e, dir*push/2)
}

func (s *SeparationSystem) bodies(w *ecs.World) []separationBody {
	var out []separationBody
	ecs.ForEach2(w, component.FighterComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, f *component.Fighter, pb *component.PhysicsBody) {
		if f.Dead || pb.Disabled || pb.Shape == nil || ecs.Has(w, e, component.InoperableComponent.Kind()) {
			return
		}
		body := separationBody{e: e, slot: f.Slot}
		if motion, ok := ecs.Get(w, e, component.MotionComponent.Kind()); ok {
			body.motion = motion.Requested
		}
		out = append(out, body)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].slot < out[j].slot })
	return out
}
