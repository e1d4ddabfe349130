package collection

// Iterator walks a collection one item at a time:
//
//	it := view.Iter()
//	for it.Next() {
//	    fmt.Println(it.Index(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// If the collection is mutated after the iterator was created, the next call
// to Next returns false and Err reports ErrConcurrentModification.
//
// Iterators come from Iter. The zero value is an iterator over nothing.
type Iterator[T any] struct {
	src     *observable[T]
	version int
	next    int
	current T
	err     error
}

// Next advances to the next item and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	var zero T
	if it.err != nil || it.src == nil {
		return false
	}
	if it.src.version != it.version {
		it.err = errModifiedDuringEnumeration("collection.Iterator.Next")
		it.current = zero
		return false
	}
	if it.next >= len(it.src.items) {
		it.current = zero
		return false
	}
	it.current = it.src.items[it.next]
	it.next++
	return true
}

// Value returns the item at the current position.
func (it *Iterator[T]) Value() T {
	return it.current
}

// Index returns the position of the current item, or -1 before the first
// call to Next.
func (it *Iterator[T]) Index() int {
	return it.next - 1
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
