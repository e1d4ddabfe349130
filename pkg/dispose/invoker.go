package dispose

import "github.com/go-drift/observe/pkg/errors"

// Disposable is implemented by anything holding a resource that must be
// released exactly once.
type Disposable interface {
	Dispose()
}

// Invoker runs a caller-supplied action the first time Dispose is called.
//
// Invoker is NOT thread-safe. It must only be used from the goroutine that
// owns the resource it releases.
type Invoker struct {
	action  func()
	invoked bool
}

// NewInvoker wraps action. A nil action is rejected with an invalid-argument
// error naming the "action" parameter.
func NewInvoker(action func()) (*Invoker, error) {
	if action == nil {
		return nil, errors.InvalidArgument("dispose.NewInvoker", "action")
	}
	return &Invoker{action: action}, nil
}

// Dispose runs the wrapped action on the first call. Later calls, including
// calls made from inside the action itself, do nothing.
func (i *Invoker) Dispose() {
	if i.invoked {
		return
	}
	i.invoked = true
	i.action()
}

// Invoked reports whether the action has run.
func (i *Invoker) Invoked() bool {
	return i.invoked
}
