package spindle

import "runtime/debug"

// WorkFunc performs arbitrary, potentially blocking work and returns either
// a value or an error.
type WorkFunc[T any] func() (T, error)

// DeliverFunc receives the outcome of a work function. It is invoked on the
// worker thread that executed the work, and it must not block: a slow
// delivery callback stalls the worker and defeats thread reuse.
type DeliverFunc[T any] func(Outcome[T])

// Outcome is the tagged result of running a work function: either a value
// or a failure. A panic raised by the work function is not propagated; it is
// captured in Err as a *PanicError carrying the recovered value and the
// stack at the panic site.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Unpack returns the outcome as an ordinary (value, error) pair.
func (o Outcome[T]) Unpack() (T, error) {
	return o.Value, o.Err
}

// Capture runs work inside a failure-catching boundary and returns its
// outcome. A returned error and a raised panic both land in Outcome.Err;
// Capture itself never panics on behalf of work.
func Capture[T any](work WorkFunc[T]) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out.Err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	out.Value, out.Err = work()
	return
}
