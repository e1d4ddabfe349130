// Package change defines the payloads carried by property-change
// notifications.
//
// Payloads are immutable values: they are built once per mutation, handed
// to subscribers synchronously and then dropped. They perform no validation.
package change

import "fmt"

// PropertyChange reports the old and new value of a scalar property.
type PropertyChange[T any] struct {
	oldValue T
	newValue T
}

// NewPropertyChange returns a payload carrying oldValue and newValue.
func NewPropertyChange[T any](oldValue, newValue T) PropertyChange[T] {
	return PropertyChange[T]{oldValue: oldValue, newValue: newValue}
}

// OldValue returns the value before the change.
func (c PropertyChange[T]) OldValue() T { return c.oldValue }

// NewValue returns the value after the change.
func (c PropertyChange[T]) NewValue() T { return c.newValue }

func (c PropertyChange[T]) String() string {
	return fmt.Sprintf("%v -> %v", c.oldValue, c.newValue)
}

// IndexedPropertyChange reports a change at a position inside a container.
//
// Index is not checked against any container: a negative or out-of-bounds
// index is carried as given. Collections use -1 to report a reset that has
// no single position.
type IndexedPropertyChange[I comparable, V any] struct {
	index    I
	oldValue V
	newValue V
}

// NewIndexedPropertyChange returns a payload for a change at index.
func NewIndexedPropertyChange[I comparable, V any](index I, oldValue, newValue V) IndexedPropertyChange[I, V] {
	return IndexedPropertyChange[I, V]{index: index, oldValue: oldValue, newValue: newValue}
}

// Index returns the position at which the change happened.
func (c IndexedPropertyChange[I, V]) Index() I { return c.index }

// OldValue returns the value before the change.
func (c IndexedPropertyChange[I, V]) OldValue() V { return c.oldValue }

// NewValue returns the value after the change.
func (c IndexedPropertyChange[I, V]) NewValue() V { return c.newValue }

func (c IndexedPropertyChange[I, V]) String() string {
	return fmt.Sprintf("[%v] %v -> %v", c.index, c.oldValue, c.newValue)
}
