package spindle

import (
	"runtime"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// job is one assigned unit of work. run executes the work function and
// returns a thunk that invokes the delivery callback with the captured
// outcome. Splitting execution from delivery lets the worker re-register
// itself as idle in between, which is what makes reuse from inside a
// delivery callback possible.
type job struct {
	run func() (deliver func())
}

// worker is the identity-bearing handle to one live worker thread.
//
// At any instant a worker is in exactly one of three states: idle-registered
// (present in the cache's idle registry, blocked on its handoff channel),
// assigned (popped from the registry, a job in flight on the channel), or
// executing. The channel send that assigns a job both populates the job slot
// and releases the worker's bounded wait, so the job write is always visible
// to the worker before it wakes.
type worker struct {
	id    uint64
	cache *Cache
	jobs  chan job // capacity 1: the one-shot, re-armed handoff slot
	tid   int      // OS thread id, 0 where unavailable
}

func (c *Cache) newWorker() *worker {
	return &worker{
		id:    c.nextWorkerID.Add(1) - 1,
		cache: c,
		jobs:  make(chan job, 1),
	}
}

// run is the worker's thread loop. It waits for jobs with a bounded wait and
// exits once it has been idle for the full idle timeout and has managed to
// deregister itself before any assigner claimed it.
func (w *worker) run() {
	c := w.cache

	if c.config.PinWorkerThreads {
		// Deliberately never unlocked: when the goroutine returns, the
		// runtime discards the wired thread, so an idle-timeout exit
		// actually releases an OS thread.
		runtime.LockOSThread()
	}
	w.tid = osThreadID()

	c.logWorker(w).Debug("spindle: worker started")
	if c.config.OnWorkerStart != nil {
		c.config.OnWorkerStart(w.id)
	}
	defer func() {
		c.noteExited()
		c.logWorker(w).Debug("spindle: worker exited after idle timeout")
		if c.config.OnWorkerStop != nil {
			c.config.OnWorkerStop(w.id)
		}
	}()

	timer := time.NewTimer(c.config.IdleTimeout)
	defer timer.Stop()

	for {
		select {
		case j := <-w.jobs:
			if !timer.Stop() {
				<-timer.C
			}
			w.handle(j)

		case <-timer.C:
			// Idle for the full timeout, so we can probably exit. There is
			// a race, though: a job may be assigned *just* as the timeout
			// fires. Deregistering resolves it: if removal succeeds, no
			// assigner can claim us anymore and exiting is safe. If it
			// fails, an assigner already popped us and its job is
			// guaranteed to arrive on the channel.
			if c.registry.remove(w) {
				c.noteDeregistered()
				return
			}
			w.handle(<-w.jobs)
		}

		timer.Reset(c.config.IdleTimeout)
	}
}

// handle runs one job: capture the outcome, re-register as idle, then
// deliver. Registration must happen before delivery; otherwise a caller that
// chains a new job from inside its delivery callback would find no idle
// worker and spawn a superfluous thread even though this one is about to
// become free.
func (w *worker) handle(j job) {
	c := w.cache

	start := time.Now()
	deliver := j.run()
	c.noteExecuted(time.Since(start))

	c.registry.insert(w)
	c.noteRegistered()

	w.deliver(deliver)
}

// deliver invokes the delivery thunk, containing any panic it raises.
// Delivery callbacks are documented as must-not-panic; when one does anyway,
// the failure is reported to the diagnostic sink and the worker keeps
// running so that unrelated jobs are unaffected.
func (w *worker) deliver(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.cache.reportDeliveryFailure(w, r, debug.Stack())
		}
	}()
	fn()
}

// logWorker returns an entry carrying the worker's identity fields.
func (c *Cache) logWorker(w *worker) *logrus.Entry {
	return c.config.Logger.WithFields(logrus.Fields{
		"worker": w.id,
		"thread": w.tid,
	})
}
