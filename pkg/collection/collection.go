package collection

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/go-drift/observe/pkg/change"
	"github.com/go-drift/observe/pkg/dispose"
)

// Action identifies the kind of structural change.
type Action int

const (
	// ActionAdd means one item was inserted.
	ActionAdd Action = iota
	// ActionRemove means one item was removed.
	ActionRemove
	// ActionReplace means one item was replaced in place.
	ActionReplace
	// ActionMove means one item moved to another index.
	ActionMove
	// ActionReset means the contents changed wholesale (Clear).
	ActionReset
)

// String returns a human-readable representation of the action.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionReplace:
		return "replace"
	case ActionMove:
		return "move"
	case ActionReset:
		return "reset"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// CollectionChange describes one structural change.
//
// Indices that do not apply to the action are -1.
type CollectionChange[T any] struct {
	Action Action

	// NewItems holds the inserted item (Add), the replacement (Replace) or the
	// moved item (Move).
	NewItems []T
	NewIndex int

	// OldItems holds the removed item (Remove), the replaced item (Replace),
	// the moved item (Move) or every item dropped by a Reset.
	OldItems []T
	OldIndex int
}

// Property names reported through OnPropertyChanged.
const (
	// CountProperty is raised when the number of items changes.
	CountProperty = "Count"
	// ItemsProperty is raised on every mutation.
	ItemsProperty = "Item[]"
)

// PropertyChangedEvent reports a change of an aggregate property of a
// collection. Count is populated for CountProperty and Item for
// ItemsProperty; the other field is the zero value.
type PropertyChangedEvent[T any] struct {
	Property string
	Count    change.PropertyChange[int]
	Item     change.IndexedPropertyChange[int, T]
}

// ReadOnly is the non-mutating surface shared by Observable collections and
// their views.
type ReadOnly[T any] interface {
	// ID identifies the underlying collection. A view reports its source's ID.
	ID() uuid.UUID
	// Len returns the number of items.
	Len() int
	// At returns the item at index i, or ErrOutOfRange outside [0, Len()).
	At(i int) (T, error)
	// IndexFunc returns the index of the first item satisfying match, or -1.
	IndexFunc(match func(T) bool) int
	// Items returns a copy of the current items.
	Items() []T
	// All enumerates index/item pairs.
	All() iter.Seq2[int, T]
	// Iter returns an explicit iterator over the current items.
	Iter() *Iterator[T]

	// OnCollectionChanged subscribes to structural changes.
	OnCollectionChanged(fn func(CollectionChange[T])) (dispose.Disposable, error)
	// OnPropertyChanged subscribes to Count and Item[] property changes.
	OnPropertyChanged(fn func(PropertyChangedEvent[T])) (dispose.Disposable, error)

	source() *observable[T]
}

// Observable is an ordered collection that notifies subscribers of every
// mutation.
type Observable[T any] interface {
	ReadOnly[T]

	// Append adds v at the end.
	Append(v T) error
	// Insert adds v at index i. i == Len() appends; any other i outside
	// [0, Len()] fails with ErrOutOfRange.
	Insert(i int, v T) error
	// RemoveAt removes and returns the item at index i.
	RemoveAt(i int) (T, error)
	// Set replaces the item at index i and returns the previous item.
	Set(i int, v T) (T, error)
	// Move relocates the item at index from so that it ends up at index to.
	Move(from, to int) error
	// Clear removes every item.
	Clear() error
}
