package collection

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/go-drift/observe/pkg/errors"
)

// Factory is the only way to obtain collections and views.
type Factory[T any] interface {
	// New returns an empty collection.
	New() Observable[T]
	// From returns a collection holding a copy of items. Later changes to
	// items are not observed. A nil slice is rejected; pass an empty slice
	// for an empty collection.
	From(items []T) (Observable[T], error)
	// FromSeq returns a collection holding the values produced by seq.
	FromSeq(seq iter.Seq[T]) (Observable[T], error)
	// ReadOnly returns a view bound to source for the view's lifetime.
	ReadOnly(source Observable[T]) (ReadOnly[T], error)
}

// Option configures a Factory.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger that collections created by the factory use to
// record mutations at debug level. The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type factory[T any] struct {
	logger *slog.Logger
}

// NewFactory returns a Factory for collections of T.
func NewFactory[T any](opts ...Option) Factory[T] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &factory[T]{logger: o.logger}
}

func (f *factory[T]) New() Observable[T] {
	return newObservable[T](nil, f.logger)
}

func (f *factory[T]) From(items []T) (Observable[T], error) {
	if items == nil {
		return nil, errors.InvalidArgument("collection.From", "items")
	}
	return newObservable(slices.Clone(items), f.logger), nil
}

func (f *factory[T]) FromSeq(seq iter.Seq[T]) (Observable[T], error) {
	if seq == nil {
		return nil, errors.InvalidArgument("collection.FromSeq", "seq")
	}
	return newObservable(slices.Collect(seq), f.logger), nil
}

func (f *factory[T]) ReadOnly(source Observable[T]) (ReadOnly[T], error) {
	if source == nil {
		return nil, errors.InvalidArgument("collection.ReadOnly", "source")
	}
	src := source.source()
	if src == nil {
		return nil, errors.InvalidArgument("collection.ReadOnly", "source")
	}
	return &readOnly[T]{src: src}, nil
}
