package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// Handler returns the handler that Report and the Recover helpers deliver to.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// SetHandler installs h and returns the handler it replaced, so a caller can
// restore it:
//
//	defer errors.SetHandler(errors.SetHandler(h))
//
// Nil installs a LogHandler on slog.Default().
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	handler = h
	return prev
}

// Report delivers err to the installed handler, stamping it first if
// Timestamp is unset.
func Report(err *ObserveError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic delivers a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress and swallows it.
// Usage: defer errors.Recover("observe.main")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(newPanicError(op, r))
	}
}

// RecoverAsError turns a panic in progress into an error stored in *errp.
//
// Collections panic with an *ObserveError when they are modified while being
// ranged over with All. Such a panic is reported as an ordinary error and
// stored unchanged, so errors.Is(*errp, ErrConcurrentModification) holds. Any
// other panic value is reported and stored as a *PanicError.
//
//	func walk(c collection.ReadOnly[int]) (err error) {
//	    defer errors.RecoverAsError("walk", &err)
//	    for _, v := range c.All() { ... }
//	    return nil
//	}
func RecoverAsError(op string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if oe, ok := r.(*ObserveError); ok && oe != nil {
		Report(oe)
		if errp != nil {
			*errp = oe
		}
		return
	}
	perr := newPanicError(op, r)
	ReportPanic(perr)
	if errp != nil {
		*errp = perr
	}
}

func newPanicError(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// CaptureStack returns the calling goroutine's stack, one function and
// file:line pair per frame. Frames inside the runtime, such as the panic
// machinery when called from a deferred recover, are left out.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !isHandlerFrame(frame.Function) {
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(frame.Line))
			sb.WriteString("\n")
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// isHandlerFrame matches the recover helpers in this file.
func isHandlerFrame(fn string) bool {
	return strings.HasSuffix(fn, "/pkg/errors.newPanicError") ||
		strings.HasSuffix(fn, "/pkg/errors.Recover") ||
		strings.HasSuffix(fn, "/pkg/errors.RecoverAsError")
}
