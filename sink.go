package spindle

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// DeliveryFailure describes a panic raised by a delivery callback.
type DeliveryFailure struct {
	// WorkerID identifies the worker whose delivery callback panicked.
	WorkerID uint64

	// ThreadID is the worker's OS thread id, or 0 where unavailable.
	ThreadID int

	// Value is the value passed to panic.
	Value any

	// Stack is the worker's stack at the panic site.
	Stack []byte

	// Time is when the failure was recorded.
	Time time.Time
}

// FailureSink receives reports about delivery callbacks that panicked.
// Delivery callbacks are documented as must-not-panic; when one does, the
// worker survives, and the failure is reported here instead of propagating.
//
// Implementations must be safe for concurrent use and must not panic.
type FailureSink interface {
	ReportDeliveryFailure(DeliveryFailure)
}

// FailureRecorder is a FailureSink that keeps the most recent failures in a
// bounded FIFO, dropping the oldest once full. It doubles as a lightweight
// flight recorder in production and as an assertion target in tests.
type FailureRecorder struct {
	mu       sync.Mutex
	failures *queue.Queue
	capacity int
}

// NewFailureRecorder creates a recorder holding at most capacity failures.
// If capacity is <= 0, it defaults to 64.
func NewFailureRecorder(capacity int) *FailureRecorder {
	if capacity <= 0 {
		capacity = 64
	}
	return &FailureRecorder{
		failures: queue.New(),
		capacity: capacity,
	}
}

// ReportDeliveryFailure implements FailureSink.
func (r *FailureRecorder) ReportDeliveryFailure(f DeliveryFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures.Add(f)
	for r.failures.Length() > r.capacity {
		r.failures.Remove()
	}
}

// Failures returns the recorded failures, oldest first.
func (r *FailureRecorder) Failures() []DeliveryFailure {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]DeliveryFailure, 0, r.failures.Length())
	for i := 0; i < r.failures.Length(); i++ {
		out = append(out, r.failures.Get(i).(DeliveryFailure))
	}
	return out
}

// Len returns the number of recorded failures.
func (r *FailureRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures.Length()
}
