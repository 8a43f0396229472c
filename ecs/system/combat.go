package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
)

// ResolveHit casts the attacker's reach along its facing and damages the
// nearest other body that has health. Walls and the attacker itself are
// skipped. At most one target is hit. A whiff returns false and changes
// nothing.
func ResolveHit(w *ecs.World, col Collision, bus *ecs.Bus, attacker ecs.Entity, kind component.AttackKind) (ecs.Entity, bool) {
	if w == nil || col == nil {
		return 0, false
	}
	f, ok := ecs.Get(w, attacker, component.FighterComponent.Kind())
	if !ok {
		return 0, false
	}
	origin, ok := col.Position(w, attacker)
	if !ok {
		return 0, false
	}

	dir := cp.Vector{X: f.Facing.Sign()}
	for _, hit := range col.DirectionalQuery(w, origin, dir, f.Params.AttackRange) {
		if hit.Entity == attacker {
			continue
		}
		health, ok := ecs.Get(w, hit.Entity, component.HealthComponent.Kind())
		if !ok {
			continue
		}
		amount := f.Params.Damage(kind)
		if health.ApplyDamage(amount) {
			ecs.Publish(bus, Damaged{
				Attacker:  attacker,
				Target:    hit.Entity,
				Kind:      kind,
				Amount:    amount,
				Remaining: health.Current,
			})
		}
		return hit.Entity, true
	}
	return 0, false
}
