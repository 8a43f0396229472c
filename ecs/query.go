package ecs

import "github.com/milk9111/duel/ecs/component"

// ForEach visits every live entity holding a component of kind. The id list is
// snapshotted first so fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	ids := append([]entityID(nil), s.ids()...)
	for _, id := range ids {
		e, ok := w.entityFor(id)
		if !ok {
			continue
		}
		v, ok := s.get(id)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := storeFor(w, kb, false)
	if sb == nil || fn == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := sb.get(e.id())
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// First returns the first live entity holding kind, in storage order.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, nil, false
	}
	for _, id := range s.ids() {
		e, ok := w.entityFor(id)
		if !ok {
			continue
		}
		v, _ := s.get(id)
		return e, v, true
	}
	return 0, nil, false
}
