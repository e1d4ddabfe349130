package collection

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/go-drift/observe/pkg/change"
	"github.com/go-drift/observe/pkg/dispose"
	"github.com/go-drift/observe/pkg/errors"
	"github.com/go-drift/observe/pkg/notify"
)

// observable is the only Observable implementation.
type observable[T any] struct {
	id     uuid.UUID
	items  []T
	logger *slog.Logger

	// version increments on every mutation; iterators compare against it.
	version int

	collectionChanged notify.Event[CollectionChange[T]]
	propertyChanged   notify.Event[PropertyChangedEvent[T]]
}

func newObservable[T any](items []T, logger *slog.Logger) *observable[T] {
	return &observable[T]{
		id:     newID(),
		items:  items,
		logger: logger,
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func (c *observable[T]) source() *observable[T] { return c }

func (c *observable[T]) ID() uuid.UUID { return c.id }

func (c *observable[T]) Len() int { return len(c.items) }

func (c *observable[T]) At(i int) (T, error) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, errors.OutOfRange("collection.At", i, len(c.items))
	}
	return c.items[i], nil
}

func (c *observable[T]) IndexFunc(match func(T) bool) int {
	if match == nil {
		return -1
	}
	return slices.IndexFunc(c.items, match)
}

func (c *observable[T]) Items() []T {
	return slices.Clone(c.items)
}

func (c *observable[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		version := c.version
		for i := 0; i < len(c.items); i++ {
			if !yield(i, c.items[i]) {
				return
			}
			if c.version != version {
				panic(errModifiedDuringEnumeration("collection.All"))
			}
		}
	}
}

func (c *observable[T]) Iter() *Iterator[T] {
	return &Iterator[T]{src: c, version: c.version, next: 0}
}

func (c *observable[T]) OnCollectionChanged(fn func(CollectionChange[T])) (dispose.Disposable, error) {
	return c.collectionChanged.Subscribe(fn)
}

func (c *observable[T]) OnPropertyChanged(fn func(PropertyChangedEvent[T])) (dispose.Disposable, error) {
	return c.propertyChanged.Subscribe(fn)
}

func (c *observable[T]) Append(v T) error {
	return c.insert("collection.Append", len(c.items), v)
}

func (c *observable[T]) Insert(i int, v T) error {
	return c.insert("collection.Insert", i, v)
}

func (c *observable[T]) insert(op string, i int, v T) error {
	if err := c.checkReentrancy(op); err != nil {
		return err
	}
	if i < 0 || i > len(c.items) {
		return errors.OutOfRange(op, i, len(c.items))
	}

	oldCount := len(c.items)
	c.items = slices.Insert(c.items, i, v)
	c.version++
	c.logChange(ActionAdd, i)

	var zero T
	c.collectionChanged.Emit(CollectionChange[T]{
		Action:   ActionAdd,
		NewItems: []T{v},
		NewIndex: i,
		OldIndex: -1,
	})
	c.emitCount(oldCount)
	c.emitItems(i, zero, v)
	return nil
}

func (c *observable[T]) RemoveAt(i int) (T, error) {
	const op = "collection.RemoveAt"
	var zero T
	if err := c.checkReentrancy(op); err != nil {
		return zero, err
	}
	if i < 0 || i >= len(c.items) {
		return zero, errors.OutOfRange(op, i, len(c.items))
	}

	oldCount := len(c.items)
	removed := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	c.version++
	c.logChange(ActionRemove, i)

	c.collectionChanged.Emit(CollectionChange[T]{
		Action:   ActionRemove,
		OldItems: []T{removed},
		OldIndex: i,
		NewIndex: -1,
	})
	c.emitCount(oldCount)
	c.emitItems(i, removed, zero)
	return removed, nil
}

func (c *observable[T]) Set(i int, v T) (T, error) {
	const op = "collection.Set"
	var zero T
	if err := c.checkReentrancy(op); err != nil {
		return zero, err
	}
	if i < 0 || i >= len(c.items) {
		return zero, errors.OutOfRange(op, i, len(c.items))
	}

	old := c.items[i]
	c.items[i] = v
	c.version++
	c.logChange(ActionReplace, i)

	c.collectionChanged.Emit(CollectionChange[T]{
		Action:   ActionReplace,
		NewItems: []T{v},
		NewIndex: i,
		OldItems: []T{old},
		OldIndex: i,
	})
	c.emitItems(i, old, v)
	return old, nil
}

func (c *observable[T]) Move(from, to int) error {
	const op = "collection.Move"
	if err := c.checkReentrancy(op); err != nil {
		return err
	}
	if from < 0 || from >= len(c.items) {
		return errors.OutOfRange(op, from, len(c.items))
	}
	if to < 0 || to >= len(c.items) {
		return errors.OutOfRange(op, to, len(c.items))
	}

	item := c.items[from]
	c.items = slices.Delete(c.items, from, from+1)
	c.items = slices.Insert(c.items, to, item)
	c.version++
	c.logChange(ActionMove, to)

	c.collectionChanged.Emit(CollectionChange[T]{
		Action:   ActionMove,
		NewItems: []T{item},
		NewIndex: to,
		OldItems: []T{item},
		OldIndex: from,
	})
	c.emitItems(to, item, item)
	return nil
}

func (c *observable[T]) Clear() error {
	const op = "collection.Clear"
	if err := c.checkReentrancy(op); err != nil {
		return err
	}

	removed := c.items
	c.items = nil
	c.version++
	c.logChange(ActionReset, -1)

	var zero T
	c.collectionChanged.Emit(CollectionChange[T]{
		Action:   ActionReset,
		OldItems: removed,
		OldIndex: -1,
		NewIndex: -1,
	})
	c.propertyChanged.Emit(PropertyChangedEvent[T]{
		Property: CountProperty,
		Count:    change.NewPropertyChange(len(removed), 0),
	})
	c.emitItems(-1, zero, zero)
	return nil
}

// checkReentrancy rejects mutations issued from a handler of this
// collection.
func (c *observable[T]) checkReentrancy(op string) error {
	if c.collectionChanged.Emitting() || c.propertyChanged.Emitting() {
		return errors.ConcurrentModification(op, "collection modified from its own change handler")
	}
	return nil
}

func (c *observable[T]) emitCount(oldCount int) {
	c.propertyChanged.Emit(PropertyChangedEvent[T]{
		Property: CountProperty,
		Count:    change.NewPropertyChange(oldCount, len(c.items)),
	})
}

func (c *observable[T]) emitItems(index int, oldValue, newValue T) {
	c.propertyChanged.Emit(PropertyChangedEvent[T]{
		Property: ItemsProperty,
		Item:     change.NewIndexedPropertyChange(index, oldValue, newValue),
	})
}

func (c *observable[T]) logChange(action Action, index int) {
	c.logger.Debug("collection changed",
		slog.String("collection", c.id.String()),
		slog.String("op", action.String()),
		slog.Int("index", index),
		slog.Int("count", len(c.items)),
	)
}

func errModifiedDuringEnumeration(op string) *errors.ObserveError {
	return errors.ConcurrentModification(op, "collection modified during enumeration")
}
