// Package errors provides structured error handling for observe.
//
// Every failure raised by the collection, dispose and notify packages is an
// *ObserveError carrying the failing operation, an ErrorKind and, when
// relevant, the offending parameter or index. Callers test the category with
// the standard library:
//
//	if errors.Is(err, observeerrors.ErrOutOfRange) { ... }
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a required argument was nil or absent.
	KindInvalidArgument
	// KindOutOfRange indicates an index outside the permitted interval.
	KindOutOfRange
	// KindConcurrentModification indicates a collection changed while it was
	// being enumerated or while it was delivering a notification.
	KindConcurrentModification
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration or script loading failure.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindOutOfRange:
		return "out of range"
	case KindConcurrentModification:
		return "concurrent modification"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// kindError is the sentinel type matched by ObserveError.Is.
type kindError ErrorKind

func (k kindError) Error() string { return ErrorKind(k).String() }

// Sentinels for use with errors.Is.
var (
	ErrInvalidArgument        error = kindError(KindInvalidArgument)
	ErrOutOfRange             error = kindError(KindOutOfRange)
	ErrConcurrentModification error = kindError(KindConcurrentModification)
	ErrConfig                 error = kindError(KindConfig)
)

// ObserveError represents a structured error raised by observe.
type ObserveError struct {
	// Op is the operation that failed (e.g., "collection.Insert").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Param names the offending argument for KindInvalidArgument.
	Param string
	// Index is the rejected index for KindOutOfRange.
	Index int
	// Count is the collection length at the time of an out-of-range access.
	Count int
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *ObserveError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s [%s] param=%s: %v", e.Op, e.Kind, e.Param, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ObserveError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *ObserveError) Is(target error) bool {
	k, ok := target.(kindError)
	return ok && ErrorKind(k) == e.Kind
}

// InvalidArgument returns an error for a nil or absent required argument.
func InvalidArgument(op, param string) *ObserveError {
	return &ObserveError{
		Op:    op,
		Kind:  KindInvalidArgument,
		Param: param,
		Err:   fmt.Errorf("%s must not be nil", param),
	}
}

// OutOfRange returns an error for an index outside [0, count) or, for
// inserts, [0, count].
func OutOfRange(op string, index, count int) *ObserveError {
	return &ObserveError{
		Op:    op,
		Kind:  KindOutOfRange,
		Index: index,
		Count: count,
		Err:   fmt.Errorf("index %d out of range for length %d", index, count),
	}
}

// ConcurrentModification returns an error for a mutation observed during
// enumeration or notification delivery.
func ConcurrentModification(op, detail string) *ObserveError {
	return &ObserveError{
		Op:   op,
		Kind: KindConcurrentModification,
		Err:  fmt.Errorf("%s", detail),
	}
}

// Config wraps a configuration or script failure.
func Config(op string, err error) *ObserveError {
	return &ObserveError{
		Op:   op,
		Kind: KindConfig,
		Err:  err,
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.replay").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// ErrorHandler receives errors reported through Report and Recover.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ObserveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
