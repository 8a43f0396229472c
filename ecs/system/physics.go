package system

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

var ErrNoCollider = errors.New("physics: entity has no usable collider")

// contactSkin absorbs float error so bodies clamped flush against each other
// still count as touching.
const contactSkin = 1e-6

// PhysicsSystem adapts a Chipmunk2D space to the Collision primitive.
// Fighters are kinematic sensor boxes moved only through Move, so the solver
// never pushes them; walls are static boxes.
type PhysicsSystem struct {
	space *cp.Space

	bodies map[ecs.Entity]*bodyInfo
	order  []ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

var _ Collision = (*PhysicsSystem)(nil)

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
	if dt > 0 {
		ps.space.Step(dt)
	}
	ps.syncTransforms(w)
}

// Register creates the Chipmunk body and shape for e from its PhysicsBody and
// Transform. Registering an entity twice rebuilds its body.
func (ps *PhysicsSystem) Register(w *ecs.World, e ecs.Entity) error {
	if ps == nil || w == nil {
		return ErrNoCollider
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Width <= 0 || pb.Height <= 0 {
		return fmt.Errorf("%w: %v", ErrNoCollider, e)
	}
	pos := cp.Vector{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = cp.Vector{X: t.X, Y: t.Y}
	}

	ps.unregister(e)

	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(pos)
	ps.space.AddBody(body)

	shape := cp.NewBox(body, pb.Width, pb.Height, 0)
	shape.SetSensor(!pb.Static)
	shape.UserData = e
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	ps.bodies[e] = &bodyInfo{body: body, shape: shape, static: pb.Static}
	ps.order = append(ps.order, e)
	return nil
}

func (ps *PhysicsSystem) unregister(e ecs.Entity) {
	info, ok := ps.bodies[e]
	if !ok {
		return
	}
	if info.shape != nil && info.shape.Space() != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
	for i, other := range ps.order {
		if other == e {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range append([]ecs.Entity(nil), ps.order...) {
		if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ps.unregister(e)
		}
	}
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		info, ok := ps.bodies[e]
		if ok && pb.Body == info.body {
			return
		}
		if pb.Width <= 0 || pb.Height <= 0 {
			return
		}
		_ = ps.Register(w, e)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range ps.order {
		info := ps.bodies[e]
		if info == nil || info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		p := info.body.Position()
		t.X, t.Y = p.X, p.Y
	}
}

func (ps *PhysicsSystem) info(w *ecs.World, e ecs.Entity) (*bodyInfo, *component.PhysicsBody, bool) {
	if ps == nil {
		return nil, nil, false
	}
	info, ok := ps.bodies[e]
	if !ok {
		return nil, nil, false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body != info.body {
		return nil, nil, false
	}
	return info, pb, true
}

// Move slides e horizontally by up to dx, stopping flush against the first
// enabled solid ahead of it that overlaps it vertically. Solids it already
// overlaps do not block, so overlapping bodies can always separate.
func (ps *PhysicsSystem) Move(w *ecs.World, e ecs.Entity, dx float64) float64 {
	info, pb, ok := ps.info(w, e)
	if !ok || info.static || pb.Disabled || dx == 0 || math.IsNaN(dx) {
		return 0
	}
	bb := info.shape.BB()
	allowed := dx
	for _, other := range ps.order {
		if other == e {
			continue
		}
		oinfo, opb, ok := ps.info(w, other)
		if !ok || opb.Disabled {
			continue
		}
		obb := oinfo.shape.BB()
		if !(bb.B < obb.T && obb.B < bb.T) {
			continue
		}
		if dx > 0 && obb.L >= bb.R-contactSkin {
			allowed = math.Min(allowed, math.Max(0, obb.L-bb.R))
		} else if dx < 0 && obb.R <= bb.L+contactSkin {
			allowed = math.Max(allowed, math.Min(0, obb.R-bb.L))
		}
	}
	if allowed == 0 {
		return 0
	}
	pos := info.body.Position()
	ps.place(w, e, info, cp.Vector{X: pos.X + allowed, Y: pos.Y})
	return allowed
}

// DirectionalQuery tests the segment against every enabled collider,
// including the caller's own. Ties are broken by entity for determinism.
func (ps *PhysicsSystem) DirectionalQuery(w *ecs.World, origin, dir cp.Vector, maxDistance float64) []QueryHit {
	if ps == nil || maxDistance <= 0 || dir.Length() == 0 {
		return nil
	}
	end := origin.Add(dir.Normalize().Mult(maxDistance))
	var hits []QueryHit
	for _, e := range ps.order {
		info, pb, ok := ps.info(w, e)
		if !ok || pb.Disabled {
			continue
		}
		alpha := info.shape.BB().SegmentQuery(origin, end)
		if alpha == cp.INFINITY || alpha > 1 {
			continue
		}
		hits = append(hits, QueryHit{Entity: e, Distance: alpha * maxDistance})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Entity < hits[j].Entity
	})
	return hits
}

// Position returns e's body position.
func (ps *PhysicsSystem) Position(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	info, _, ok := ps.info(w, e)
	if !ok {
		return cp.Vector{}, false
	}
	return info.body.Position(), true
}

// Bounds returns e's collider box.
func (ps *PhysicsSystem) Bounds(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	info, _, ok := ps.info(w, e)
	if !ok {
		return cp.BB{}, false
	}
	return info.shape.BB(), true
}

// Teleport places e at pos without collision response. Used for round resets.
func (ps *PhysicsSystem) Teleport(w *ecs.World, e ecs.Entity, pos cp.Vector) bool {
	info, _, ok := ps.info(w, e)
	if !ok {
		return false
	}
	ps.place(w, e, info, pos)
	return true
}

func (ps *PhysicsSystem) place(w *ecs.World, e ecs.Entity, info *bodyInfo, pos cp.Vector) {
	info.body.SetPosition(pos)
	info.shape.CacheBB()
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = pos.X, pos.Y
	}
}
