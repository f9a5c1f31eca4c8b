package spindle

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultIdleTimeout is how long an idle worker waits for a new job before
// it exits. The value is fairly arbitrary; it only needs to be long enough
// that steady workloads keep reusing the same threads.
const DefaultIdleTimeout = 10 * time.Second

// Config contains all configuration options for a thread cache.
type Config struct {
	// IdleTimeout is the maximum duration a worker waits for a new job
	// before terminating its thread. It governs only worker exit, never job
	// execution: a job that has started always runs to completion.
	// Defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration

	// PinWorkerThreads locks each worker goroutine to its own OS thread, so
	// the cache is genuinely a cache of OS threads and an idle-timeout exit
	// releases the thread back to the system.
	// Defaults to true.
	PinWorkerThreads bool

	// Logger receives worker lifecycle messages at debug level and, unless
	// Sink is set, delivery-failure reports at error level.
	// Defaults to the logrus standard logger (standard error).
	Logger *logrus.Logger

	// Sink receives reports about delivery callbacks that panicked.
	// If nil, failures are logged through Logger.
	Sink FailureSink

	// Metrics, if non-nil, receives cache activity counters.
	// See NewMetrics.
	Metrics *Metrics

	// OnWorkerStart is called on the worker thread when a worker starts.
	// Useful for initialization, logging, or tracing.
	OnWorkerStart func(workerID uint64)

	// OnWorkerStop is called on the worker thread just before it exits.
	// Useful for cleanup, logging, or tracing.
	OnWorkerStop func(workerID uint64)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:      DefaultIdleTimeout,
		PinWorkerThreads: true,
		Logger:           logrus.StandardLogger(),
	}
}

// Validate checks the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.IdleTimeout <= 0 {
		return errInvalidConfig("IdleTimeout must be > 0")
	}

	if c.Logger == nil {
		return errInvalidConfig("Logger must not be nil")
	}

	return nil
}
