package spindle

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Cache.
type Option func(*Config)

// WithIdleTimeout sets how long an idle worker waits for a new job before
// its thread exits.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.IdleTimeout = d
	}
}

// WithPinWorkerThreads controls whether workers lock themselves to dedicated
// OS threads. Disabling this keeps workers as ordinary goroutines, which is
// cheaper but means idle-timeout exits no longer release OS threads.
func WithPinWorkerThreads(pin bool) Option {
	return func(c *Config) {
		c.PinWorkerThreads = pin
	}
}

// WithLogger sets the logger used for worker lifecycle messages and, in the
// absence of a custom sink, delivery-failure reports.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSink routes delivery-failure reports to a custom sink instead of the
// cache's logger.
func WithSink(sink FailureSink) Option {
	return func(c *Config) {
		c.Sink = sink
	}
}

// WithMetrics attaches a set of Prometheus collectors to the cache.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithWorkerHooks sets callbacks invoked on the worker thread when a worker
// starts and stops. Either hook may be nil.
func WithWorkerHooks(onStart, onStop func(workerID uint64)) Option {
	return func(c *Config) {
		c.OnWorkerStart = onStart
		c.OnWorkerStop = onStop
	}
}
