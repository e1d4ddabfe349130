// Package collection provides ordered collections that notify subscribers
// when they change, and read-only views that relay those notifications.
//
// # Obtaining Collections
//
// Collections are created through a Factory. The concrete types are not
// exported:
//
//	f := collection.NewFactory[string]()
//	todos, err := f.From([]string{"write", "test"})
//	if err != nil {
//	    return err
//	}
//	view, err := f.ReadOnly(todos)
//
// The producer keeps todos and mutates it directly. Consumers receive view,
// which reads through to todos but has no mutating methods.
//
// # Notifications
//
// Every mutation raises two independent signals, always in this order:
//
//  1. a CollectionChange on OnCollectionChanged describing the action, the
//     affected index and the added or removed items;
//  2. one or two PropertyChangedEvent values on OnPropertyChanged: Count
//     (when the length changed, and always on Clear) followed by Item[].
//
// Subscribers listening to only one channel still observe every mutation.
// Subscriptions are released by disposing the returned dispose.Disposable:
//
//	sub, err := view.OnCollectionChanged(func(c collection.CollectionChange[string]) {
//	    fmt.Println(c.Action, c.NewIndex, c.NewItems)
//	})
//	defer sub.Dispose()
//
// # Enumeration
//
// All and Iter enumerate the items present when enumeration begins. A
// mutation while an enumeration is in progress is detected on the next step:
// Iter stops and reports ErrConcurrentModification from Err, and All panics
// with the same error.
//
// # Threading
//
// Collections are NOT thread-safe. A collection, its views and its
// subscribers belong to a single goroutine. A handler must not mutate the
// collection that is notifying it; such a mutation is rejected with
// ErrConcurrentModification and leaves the collection unchanged.
package collection
