package testing

import (
	"github.com/go-drift/observe/pkg/collection"
	"github.com/go-drift/observe/pkg/dispose"
	"github.com/go-drift/observe/pkg/errors"
)

// Channel names used in journal entries.
const (
	ChannelCollection = "collection"
	ChannelProperty   = "property"
)

// Recorder subscribes to both notification channels of a collection and
// appends each delivery to a journal, in delivery order.
type Recorder[T any] struct {
	source  collection.ReadOnly[T]
	subs    dispose.Bag
	entries []Entry
}

// NewRecorder starts recording notifications raised by source.
func NewRecorder[T any](source collection.ReadOnly[T]) (*Recorder[T], error) {
	if source == nil {
		return nil, errors.InvalidArgument("testing.NewRecorder", "source")
	}
	r := &Recorder[T]{source: source}

	sub, err := source.OnCollectionChanged(r.recordCollection)
	if err != nil {
		return nil, err
	}
	r.subs.Add(sub)

	sub, err = source.OnPropertyChanged(r.recordProperty)
	if err != nil {
		r.subs.Dispose()
		return nil, err
	}
	r.subs.Add(sub)

	return r, nil
}

func (r *Recorder[T]) recordCollection(c collection.CollectionChange[T]) {
	r.entries = append(r.entries, Entry{
		Seq:      len(r.entries),
		Channel:  ChannelCollection,
		Action:   c.Action.String(),
		OldIndex: intPtr(c.OldIndex),
		NewIndex: intPtr(c.NewIndex),
		OldItems: toAny(c.OldItems),
		NewItems: toAny(c.NewItems),
	})
}

func (r *Recorder[T]) recordProperty(e collection.PropertyChangedEvent[T]) {
	entry := Entry{
		Seq:      len(r.entries),
		Channel:  ChannelProperty,
		Property: e.Property,
	}
	switch e.Property {
	case collection.CountProperty:
		entry.Old = e.Count.OldValue()
		entry.New = e.Count.NewValue()
	case collection.ItemsProperty:
		entry.Index = intPtr(e.Item.Index())
		entry.Old = e.Item.OldValue()
		entry.New = e.Item.NewValue()
	}
	r.entries = append(r.entries, entry)
}

// Entries returns a copy of the entries recorded so far.
func (r *Recorder[T]) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Journal returns the recorded entries tagged with the source's ID.
func (r *Recorder[T]) Journal() *Journal {
	return &Journal{
		Source:  r.source.ID().String(),
		Entries: r.Entries(),
	}
}

// Reset drops the entries recorded so far and keeps recording.
func (r *Recorder[T]) Reset() {
	r.entries = nil
}

// Close stops recording. Recorded entries remain available.
func (r *Recorder[T]) Close() {
	r.subs.Dispose()
}

func intPtr(i int) *int {
	return &i
}

func toAny[T any](items []T) []any {
	if len(items) == 0 {
		return nil
	}
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}
