package ecs

import (
	"log/slog"
	"reflect"
	"sync"
)

// Bus is a typed publish/subscribe hub. Publish delivers synchronously;
// Enqueue defers delivery until the next Flush so the tick loop can decide
// when listeners observe an event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[reflect.Type][]*Subscription
	nextID   uint64

	queueMu sync.Mutex
	queue   []func()
}

// Subscription is a lifetime-scoped handle returned by Subscribe.
type Subscription struct {
	bus *Bus
	typ reflect.Type
	id  uint64
	fn  func(any)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]*Subscription)}
}

// Subscribe registers fn for events of type T. Handlers run in registration
// order.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	if b == nil || fn == nil {
		return nil
	}
	typ := reflect.TypeFor[T]()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[reflect.Type][]*Subscription)
	}
	b.nextID++
	sub := &Subscription{
		bus: b,
		typ: typ,
		id:  b.nextID,
		fn:  func(evt any) { fn(evt.(T)) },
	}
	b.handlers[typ] = append(b.handlers[typ], sub)
	return sub
}

// Unsubscribe detaches the handler. Safe to call more than once and on nil.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[s.typ]
	for i, other := range subs {
		if other.id != s.id {
			continue
		}
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, s.typ)
		} else {
			b.handlers[s.typ] = next
		}
		break
	}
	s.bus = nil
}

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool {
	if s == nil {
		return false
	}
	b := s.bus
	return b != nil && b.attached(s)
}

// Publish delivers evt to every current subscriber of T before returning.
func Publish[T any](b *Bus, evt T) {
	if b == nil {
		return
	}
	typ := reflect.TypeFor[T]()

	b.mu.RLock()
	subs := make([]*Subscription, len(b.handlers[typ]))
	copy(subs, b.handlers[typ])
	b.mu.RUnlock()

	for _, sub := range subs {
		if !b.attached(sub) {
			continue
		}
		dispatch(typ, sub, evt)
	}
}

func (b *Bus) attached(sub *Subscription) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sub.bus == b
}

// Enqueue defers evt until Flush.
func Enqueue[T any](b *Bus, evt T) {
	if b == nil {
		return
	}
	b.queueMu.Lock()
	b.queue = append(b.queue, func() { Publish(b, evt) })
	b.queueMu.Unlock()
}

// Pending reports how many events are waiting for Flush.
func (b *Bus) Pending() int {
	if b == nil {
		return 0
	}
	b.queueMu.Lock()
	defer b.queueMu.Unlock()
	return len(b.queue)
}

// Flush delivers queued events in FIFO order, including any that handlers
// enqueue while the flush is running. It returns the number delivered.
func (b *Bus) Flush() int {
	if b == nil {
		return 0
	}
	delivered := 0
	for {
		b.queueMu.Lock()
		batch := b.queue
		b.queue = nil
		b.queueMu.Unlock()
		if len(batch) == 0 {
			return delivered
		}
		for _, deliver := range batch {
			deliver()
			delivered++
		}
	}
}

// Clear drops queued events without delivering them.
func (b *Bus) Clear() {
	if b == nil {
		return
	}
	b.queueMu.Lock()
	b.queue = nil
	b.queueMu.Unlock()
}

func dispatch(typ reflect.Type, sub *Subscription, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked", "event", typ.String(), "panic", r)
		}
	}()
	sub.fn(evt)
}
