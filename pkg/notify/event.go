// Package notify provides ordered, synchronous subscriber lists.
package notify

import (
	"github.com/go-drift/observe/pkg/dispose"
	"github.com/go-drift/observe/pkg/errors"
)

type subscriber[E any] struct {
	id int
	fn func(E)
}

// Event is a list of handlers that receive values of type E.
//
// Handlers run synchronously on the emitting goroutine, in the order they
// subscribed. The zero value is ready to use.
//
// Event is NOT thread-safe. Subscribe, Emit and the returned Disposables
// must all be used from the same goroutine.
type Event[E any] struct {
	subscribers []subscriber[E]
	nextID      int
	emitting    int
}

// Subscribe registers fn and returns a Disposable that removes exactly this
// registration. Subscribing the same func twice creates two independent
// registrations. A nil fn is rejected with an invalid-argument error.
func (e *Event[E]) Subscribe(fn func(E)) (dispose.Disposable, error) {
	if fn == nil {
		return nil, errors.InvalidArgument("notify.Subscribe", "handler")
	}
	id := e.nextID
	e.nextID++
	e.subscribers = append(e.subscribers, subscriber[E]{id: id, fn: fn})
	return dispose.NewInvoker(func() {
		e.remove(id)
	})
}

func (e *Event[E]) remove(id int) {
	for i, s := range e.subscribers {
		if s.id == id {
			// Copy on removal so an in-flight Emit keeps its snapshot intact.
			next := make([]subscriber[E], 0, len(e.subscribers)-1)
			next = append(next, e.subscribers[:i]...)
			e.subscribers = append(next, e.subscribers[i+1:]...)
			return
		}
	}
}

// Emit delivers value to every handler registered when Emit was called.
// Handlers added during delivery first receive the next Emit; handlers
// removed during delivery still receive this one if not yet reached.
func (e *Event[E]) Emit(value E) {
	if len(e.subscribers) == 0 {
		return
	}
	subs := e.subscribers
	e.emitting++
	defer func() { e.emitting-- }()
	for _, s := range subs {
		s.fn(value)
	}
}

// Len returns the number of registered handlers.
func (e *Event[E]) Len() int {
	return len(e.subscribers)
}

// Emitting reports whether a delivery is in progress.
func (e *Event[E]) Emitting() bool {
	return e.emitting > 0
}
