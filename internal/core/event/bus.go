package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are readable
// in tick N+1. SwapBuffers is called once at tick start by the lifecycle
// system; consumers then read the front buffer with Drain or DispatchAll.
//
// Emit may be called from any goroutine (presentation, input), everything
// else runs on the tick goroutine.
type Bus struct {
	mu       sync.Mutex // protects back and handlers
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
	known    map[reflect.Type]bool
	order    []reflect.Type
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
		known:    make(map[reflect.Type]bool),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer (will be readable next tick).
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	b.mu.Lock()
	if !b.known[t] {
		b.known[t] = true
		b.order = append(b.order, t)
	}
	b.back[t] = append(b.back[t], event)
	b.mu.Unlock()
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Drain returns the front-buffer events of type T in emission order and
// clears them, so each event is consumed at most once per tick.
func Drain[T any](b *Bus) []T {
	t := typeOf[T]()
	events := b.front[t]
	if len(events) == 0 {
		return nil
	}
	out := make([]T, len(events))
	for i, ev := range events {
		out[i] = ev.(T)
	}
	b.front[t] = events[:0]
	return out
}

// Pending reports the number of front-buffer events of type T.
func Pending[T any](b *Bus) int {
	return len(b.front[typeOf[T]()])
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers all remaining front-buffer events to their subscribed
// handlers. Types are visited in first-emission order for determinism.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	order := append([]reflect.Type(nil), b.order...)
	b.mu.Unlock()

	for _, t := range order {
		events := b.front[t]
		if len(events) == 0 {
			continue
		}
		b.mu.Lock()
		handlers := append([]any(nil), b.handlers[t]...)
		b.mu.Unlock()
		for _, ev := range events {
			for _, h := range handlers {
				// Subscribe and Emit use the same type key.
				callHandler(h, ev)
			}
		}
		b.front[t] = events[:0]
	}
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
