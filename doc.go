// Package spindle provides a process-wide cache of worker threads for
// offloading blocking work from an event-driven scheduler.
//
// Spindle is a simple unbounded thread cache: it automatically spawns as
// many workers as needed to handle the jobs it is given. Its only purpose is
// to cache worker threads so they do not have to be started from scratch
// every time some blocking work needs to be delegated. It is expected that
// higher-level code tracks how many threads are in use and applies its own
// admission control; spindle itself never queues and never limits.
//
// # Quick Start
//
// Submit blocking work and receive its outcome on the worker thread:
//
//	err := spindle.Go(
//	    func() (int, error) {
//	        return blockingRead(fd) // may block for a long time
//	    },
//	    func(out spindle.Outcome[int]) {
//	        loop.Post(out) // must not block
//	    },
//	)
//
// The work function may block indefinitely. The delivery callback must not:
// it runs on the worker thread, and a slow callback stalls that worker.
//
// # Guarantees
//
//   - It is safe to call Go simultaneously from any number of goroutines,
//     including from inside another job's delivery callback.
//   - Every submitted job is executed exactly once and delivered exactly
//     once; the assignment and idle-exit protocols cannot drop a job even
//     when an assignment races with a worker's idle timeout.
//   - Idle workers are reused in LIFO order: work concentrates on a small
//     hot set of threads while rarely-used ones age out and exit. Compared
//     to FIFO this has better memory-cache behavior and makes the idle
//     timeout effective at shrinking the pool.
//   - A worker marks itself idle before invoking the delivery callback, so
//     a job chained from inside the callback reuses the same thread instead
//     of spawning a superfluous one.
//
// # Failure Handling
//
// A failure inside the work function is data, not a pool error: it is
// captured into the Outcome handed to the delivery callback, with panics
// wrapped in *PanicError. A panic inside the delivery callback is reported
// to the cache's diagnostic sink (by default, the logrus standard logger)
// and otherwise swallowed; the worker survives and stays reusable.
//
// # Configuration
//
// The one primary tunable is the idle timeout before an unused worker
// exits:
//
//	cache, err := spindle.NewCache(
//	    spindle.WithIdleTimeout(time.Second),
//	)
//	err = spindle.Start(cache, work, deliver)
//
// Further options attach a logger, a custom failure sink, Prometheus
// collectors, and worker lifecycle hooks. Most programs should ignore all
// of this and use the package-level Go, which shares one cache per process
// to maximize thread reuse.
//
// # Process Exit
//
// Worker threads are daemon-equivalent: the cache is never shut down, worker
// goroutines are never joined, and nothing here keeps the process alive. If
// the process exits, pending jobs may never run and in-flight jobs may never
// deliver. Callers needing completion guarantees must wait for their own
// delivery callbacks before exiting.
//
// Because workers are cached and reused across jobs, work and delivery
// functions should not mutate thread-level state — or if they do, they
// should revert their changes before returning.
//
// # Thread Safety
//
// All exported functions and methods are safe for concurrent use.
package spindle
