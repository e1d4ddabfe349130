// Package dispose provides scoped-release helpers.
//
// An Invoker adapts an arbitrary cleanup func into a Disposable that runs at
// most once, however many release sites call Dispose:
//
//	inv, err := dispose.NewInvoker(func() { conn.Close() })
//	if err != nil {
//	    return err
//	}
//	defer inv.Dispose()
//
// Subscriptions returned by the notify and collection packages are Invokers,
// so releasing a subscription twice is harmless.
//
// A Bag groups many Disposables and releases them together, last added first.
package dispose
