package spindle

import "fmt"

// Common errors returned by the thread cache.
var (
	// ErrNilWork is returned when attempting to submit a nil work function.
	// All submitted work functions must be non-nil function values.
	ErrNilWork = &CacheError{msg: "work function is nil"}

	// ErrNilDeliver is returned when attempting to submit a nil delivery
	// callback. The delivery callback is how results leave the cache, so a
	// nil callback would silently discard the outcome.
	ErrNilDeliver = &CacheError{msg: "delivery callback is nil"}
)

// CacheError represents an error that occurred within the thread cache.
// It wraps underlying errors and provides context about cache operations.
//
// CacheError implements the error interface and supports error unwrapping
// via errors.Unwrap for compatibility with errors.Is and errors.As.
type CacheError struct {
	msg string // Human-readable error message
	err error  // Underlying error (if any)
}

// Error returns a formatted error message.
// If an underlying error exists, it is included in the output.
func (e *CacheError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("spindle: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("spindle: %s", e.msg)
}

// Unwrap returns the underlying error, allowing use with errors.Is and errors.As.
func (e *CacheError) Unwrap() error {
	return e.err
}

// errInvalidConfig creates an error for invalid cache configuration.
// This is returned during cache creation when validation fails.
func errInvalidConfig(msg string) error {
	return &CacheError{msg: "invalid config: " + msg}
}

// PanicError is the failure recorded in an Outcome when a work function
// panics. Value is the value passed to panic and Stack is the stack of the
// worker thread at the panic site.
type PanicError struct {
	Value any
	Stack []byte
}

// Error returns a short description of the panic. The stack is deliberately
// not included in the message; it is available in Stack for callers that
// want it.
func (e *PanicError) Error() string {
	return fmt.Sprintf("spindle: work function panicked: %v", e.Value)
}
