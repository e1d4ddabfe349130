package collection

import (
	"iter"

	"github.com/google/uuid"

	"github.com/go-drift/observe/pkg/dispose"
)

// readOnly relays reads and subscriptions to its source. Holding the source
// pointer keeps the source alive for as long as the view is referenced.
type readOnly[T any] struct {
	src *observable[T]
}

func (v *readOnly[T]) source() *observable[T] { return v.src }

func (v *readOnly[T]) ID() uuid.UUID { return v.src.ID() }

func (v *readOnly[T]) Len() int { return v.src.Len() }

func (v *readOnly[T]) At(i int) (T, error) { return v.src.At(i) }

func (v *readOnly[T]) IndexFunc(match func(T) bool) int { return v.src.IndexFunc(match) }

func (v *readOnly[T]) Items() []T { return v.src.Items() }

func (v *readOnly[T]) All() iter.Seq2[int, T] { return v.src.All() }

func (v *readOnly[T]) Iter() *Iterator[T] { return v.src.Iter() }

// OnCollectionChanged registers fn directly on the source, so view and
// source subscribers share one delivery order.
func (v *readOnly[T]) OnCollectionChanged(fn func(CollectionChange[T])) (dispose.Disposable, error) {
	return v.src.OnCollectionChanged(fn)
}

// OnPropertyChanged registers fn directly on the source.
func (v *readOnly[T]) OnPropertyChanged(fn func(PropertyChangedEvent[T])) (dispose.Disposable, error) {
	return v.src.OnPropertyChanged(fn)
}
