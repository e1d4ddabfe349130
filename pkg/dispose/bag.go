package dispose

// Bag collects Disposables and releases them together.
//
// Dispose releases every registered item in reverse order of registration and
// marks the bag disposed. Items added after that are released immediately.
type Bag struct {
	items    []Disposable
	disposed bool
}

// Add registers d for release. It returns an unregister func that removes d
// from the bag without disposing it. Nil items are ignored.
func (b *Bag) Add(d Disposable) func() {
	if d == nil {
		return func() {}
	}

	if b.disposed {
		// Already disposed, release immediately
		d.Dispose()
		return func() {}
	}

	index := len(b.items)
	b.items = append(b.items, d)

	return func() {
		if index < len(b.items) {
			b.items[index] = nil
		}
	}
}

// AddFunc registers a cleanup func. It is wrapped in an Invoker so it runs at
// most once even if the caller also invokes it directly through the returned
// Disposable.
func (b *Bag) AddFunc(fn func()) (Disposable, error) {
	inv, err := NewInvoker(fn)
	if err != nil {
		return nil, err
	}
	b.Add(inv)
	return inv, nil
}

// Len returns the number of items still registered.
func (b *Bag) Len() int {
	n := 0
	for _, d := range b.items {
		if d != nil {
			n++
		}
	}
	return n
}

// Dispose releases all registered items in LIFO order. Subsequent calls are
// no-ops.
func (b *Bag) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true

	items := b.items
	b.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] != nil {
			items[i].Dispose()
		}
	}
}

// IsDisposed reports whether Dispose has been called.
func (b *Bag) IsDisposed() bool {
	return b.disposed
}
