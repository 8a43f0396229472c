package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

func TestPhysicsMoveClamps(t *testing.T) {
	tests := []struct {
		name      string
		startX    float64
		dx        float64
		wallX     float64
		disable   bool
		wantMoved float64
	}{
		{name: "free", startX: 0, dx: 0.5, wallX: 5, wantMoved: 0.5},
		{name: "stops_flush_at_wall", startX: 0, dx: 2, wallX: 1.8, wantMoved: 1.0},
		{name: "already_flush", startX: 1.0, dx: 0.2, wallX: 1.8, wantMoved: 0},
		{name: "moving_away_is_free", startX: 1.0, dx: -0.4, wallX: 1.8, wantMoved: -0.4},
		{name: "left_wall", startX: 0, dx: -3, wallX: -1.8, wantMoved: -1.0},
		{name: "disabled_wall_ignored", startX: 0, dx: 2, wallX: 1.8, disable: true, wantMoved: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			e := r.fighter(t, 1, tc.startX, component.FacingRight)
			wall := r.wall(t, tc.wallX, 1.0)
			if tc.disable {
				pb, _ := ecs.Get(r.w, wall, component.PhysicsBodyComponent.Kind())
				pb.Disabled = true
			}

			got := r.ps.Move(r.w, e, tc.dx)
			if !near(got, tc.wantMoved) {
				t.Fatalf("expected to move %v, got %v", tc.wantMoved, got)
			}
			if x := r.x(t, e); !near(x, tc.startX+tc.wantMoved) {
				t.Fatalf("expected x %v, got %v", tc.startX+tc.wantMoved, x)
			}
			tr, _ := ecs.Get(r.w, e, component.TransformComponent.Kind())
			if !near(tr.X, tc.startX+tc.wantMoved) {
				t.Fatalf("transform not mirrored: %v", tr.X)
			}
		})
	}
}

func TestPhysicsMoveIgnoresOverlap(t *testing.T) {
	r := newRig(t)
	a := r.fighter(t, 1, 0, component.FacingRight)
	r.fighter(t, 2, 0.2, component.FacingLeft)
	if got := r.ps.Move(r.w, a, 0.5); !near(got, 0.5) {
		t.Fatalf("overlapping body should not block, moved %v", got)
	}
}

func TestPhysicsStaticAndDisabledDoNotMove(t *testing.T) {
	r := newRig(t)
	wall := r.wall(t, 0, 1)
	if got := r.ps.Move(r.w, wall, 1); got != 0 {
		t.Fatalf("static body moved %v", got)
	}
	e := r.fighter(t, 1, 3, component.FacingRight)
	pb, _ := ecs.Get(r.w, e, component.PhysicsBodyComponent.Kind())
	pb.Disabled = true
	if got := r.ps.Move(r.w, e, 1); got != 0 {
		t.Fatalf("disabled body moved %v", got)
	}
}

func TestPhysicsDirectionalQuery(t *testing.T) {
	r := newRig(t)
	self := r.fighter(t, 1, 0, component.FacingRight)
	other := r.fighter(t, 2, 1.0, component.FacingLeft)
	wall := r.wall(t, 3, 1)

	hits := r.ps.DirectionalQuery(r.w, cp.Vector{X: 0, Y: testGroundY}, cp.Vector{X: 1}, 4)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %+v", hits)
	}
	want := []struct {
		e    ecs.Entity
		dist float64
	}{{self, 0}, {other, 0.7}, {wall, 2.5}}
	for i, w := range want {
		if hits[i].Entity != w.e || !near(hits[i].Distance, w.dist) {
			t.Fatalf("hit %d: expected %v at %v, got %+v", i, w.e, w.dist, hits[i])
		}
	}

	if got := r.ps.DirectionalQuery(r.w, cp.Vector{}, cp.Vector{}, 4); got != nil {
		t.Fatalf("zero direction should return nil, got %+v", got)
	}
}

func TestPhysicsTeleportAndDestroy(t *testing.T) {
	r := newRig(t)
	e := r.fighter(t, 1, 0, component.FacingRight)
	if !r.ps.Teleport(r.w, e, cp.Vector{X: 4, Y: testGroundY}) {
		t.Fatalf("teleport failed")
	}
	bb, ok := r.ps.Bounds(r.w, e)
	if !ok || !near(bb.L, 3.7) || !near(bb.R, 4.3) {
		t.Fatalf("bounds not refreshed after teleport: %+v", bb)
	}

	ecs.DestroyEntity(r.w, e)
	r.ps.Update(r.w, 0.1)
	if _, ok := r.ps.Position(r.w, e); ok {
		t.Fatalf("destroyed entity still has a body")
	}
	bodies := 0
	r.ps.Space().EachBody(func(*cp.Body) { bodies++ })
	if bodies != 0 {
		t.Fatalf("expected space to be empty, got %d bodies", bodies)
	}
}
