package spindle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is a cache of worker threads: it hands each submitted job to the
// most recently idled worker, or spawns a fresh one when none is idle.
//
// The cache is unbounded on purpose. Its only job is to make delegating
// blocking work to a thread cheap; admission control belongs to a layer
// above it (for example a semaphore held by the submitting scheduler).
//
// There is no shutdown. Workers are fire-and-forget relative to process
// lifetime: they never prevent the process from exiting, and a job submitted
// right before exit may not run. Callers that need completion guarantees
// must synchronize externally, e.g. by waiting for their delivery callbacks.
type Cache struct {
	config   Config
	registry *idleRegistry
	sink     FailureSink

	nextWorkerID atomic.Uint64

	// statistics, all atomic
	spawned          atomic.Uint64
	reused           atomic.Uint64
	exited           atomic.Uint64
	executed         atomic.Uint64
	deliveryFailures atomic.Uint64
}

// NewCache creates a thread cache with the given options.
// It returns an error if the configuration is invalid.
//
// Most programs never call this: the package-level Go function uses a single
// process-wide cache, which maximizes thread sharing. Explicit caches are
// mainly useful in tests that need a short idle timeout or a capturing sink.
func NewCache(opts ...Option) (*Cache, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		config:   cfg,
		registry: newIdleRegistry(),
		sink:     cfg.Sink,
	}
	if c.sink == nil {
		c.sink = logSink{logger: cfg.Logger}
	}
	return c, nil
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Default returns the process-wide cache, creating it with the default
// configuration on first use. It lives for the lifetime of the process and
// is never torn down.
func Default() *Cache {
	defaultCacheOnce.Do(func() {
		// The default configuration always validates.
		defaultCache, _ = NewCache()
	})
	return defaultCache
}

// Start submits work to c. Once work completes, deliver is invoked with its
// captured outcome on the same worker thread; deliver must not block and
// should not panic (a panic is reported to the cache's sink and swallowed).
//
// Start is safe to call concurrently from any goroutine, including from
// inside another job's delivery callback, and never blocks beyond a registry
// operation and, at worst, a thread spawn. It never waits for work itself.
//
// This is a free function rather than a method because methods cannot have
// type parameters.
func Start[T any](c *Cache, work WorkFunc[T], deliver DeliverFunc[T]) error {
	if work == nil {
		return ErrNilWork
	}
	if deliver == nil {
		return ErrNilDeliver
	}

	c.start(job{run: func() func() {
		out := Capture(work)
		return func() { deliver(out) }
	}})
	return nil
}

// Go runs deliver(Capture(work)) on a worker thread of the process-wide
// cache. Generally work does some blocking work, and deliver hands the
// result back to whoever is interested — typically by waking an event loop.
//
// See Start for the full contract.
func Go[T any](work WorkFunc[T], deliver DeliverFunc[T]) error {
	return Start(Default(), work, deliver)
}

// Submit is the non-generic form of Start, for callers that do not need a
// typed outcome.
func (c *Cache) Submit(work WorkFunc[any], deliver DeliverFunc[any]) error {
	return Start(c, work, deliver)
}

// start assigns j to an idle worker in LIFO order, or spawns a new worker.
// The buffered channel send publishes the job and releases the worker's
// bounded wait in one step; it can never block, because claiming a worker
// from the registry is exactly-once per idle period, so the claimed
// worker's slot is always empty.
func (c *Cache) start(j job) {
	w, ok := c.registry.pop()
	if ok {
		c.noteReused()
	} else {
		w = c.newWorker()
		c.noteSpawned()
		go w.run()
	}
	w.jobs <- j
}

// Stats returns a snapshot of cache statistics. Counters are read without
// locks and may be slightly inconsistent during concurrent operation.
func (c *Cache) Stats() Stats {
	spawned := c.spawned.Load()
	exited := c.exited.Load()
	return Stats{
		Spawned:          spawned,
		Reused:           c.reused.Load(),
		Exited:           exited,
		Executed:         c.executed.Load(),
		DeliveryFailures: c.deliveryFailures.Load(),
		IdleWorkers:      c.registry.size(),
		LiveWorkers:      int(spawned - exited),
	}
}

func (c *Cache) noteSpawned() {
	c.spawned.Add(1)
	if m := c.config.Metrics; m != nil {
		m.ThreadsSpawned.Inc()
	}
}

func (c *Cache) noteReused() {
	c.reused.Add(1)
	if m := c.config.Metrics; m != nil {
		m.ThreadsReused.Inc()
		m.IdleThreads.Dec()
	}
}

func (c *Cache) noteExited() {
	c.exited.Add(1)
	if m := c.config.Metrics; m != nil {
		m.ThreadsExited.Inc()
	}
}

func (c *Cache) noteExecuted(d time.Duration) {
	c.executed.Add(1)
	if m := c.config.Metrics; m != nil {
		m.JobsExecuted.Inc()
		m.WorkDuration.Observe(d.Seconds())
	}
}

func (c *Cache) noteRegistered() {
	if m := c.config.Metrics; m != nil {
		m.IdleThreads.Inc()
	}
}

func (c *Cache) noteDeregistered() {
	if m := c.config.Metrics; m != nil {
		m.IdleThreads.Dec()
	}
}

// reportDeliveryFailure records a panicking delivery callback and forwards
// the report to the configured sink.
func (c *Cache) reportDeliveryFailure(w *worker, value any, stack []byte) {
	c.deliveryFailures.Add(1)
	if m := c.config.Metrics; m != nil {
		m.DeliveryFailures.Inc()
	}
	c.sink.ReportDeliveryFailure(DeliveryFailure{
		WorkerID: w.id,
		ThreadID: w.tid,
		Value:    value,
		Stack:    stack,
		Time:     time.Now(),
	})
}

// logSink is the default diagnostic sink: failures go to the cache's logger
// with the recovered value and the delivery stack.
type logSink struct {
	logger *logrus.Logger
}

func (s logSink) ReportDeliveryFailure(f DeliveryFailure) {
	s.logger.WithFields(logrus.Fields{
		"worker": f.WorkerID,
		"thread": f.ThreadID,
		"panic":  f.Value,
	}).Errorf("spindle: panic while delivering result of thread\n%s", f.Stack)
}
