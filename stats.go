package spindle

// Stats contains statistics about cache operation. All counters are
// snapshots taken at the time Stats() is called and may be slightly
// inconsistent during concurrent operations due to lock-free reads.
type Stats struct {
	// Spawned is the total number of worker threads created since the cache
	// was created.
	Spawned uint64

	// Reused is the total number of jobs that were assigned to an
	// already-idle worker instead of spawning a new thread. A high ratio of
	// Reused to Spawned means the cache is doing its job.
	Reused uint64

	// Exited is the total number of worker threads that terminated after
	// idling for the full idle timeout.
	Exited uint64

	// Executed is the total number of jobs whose work function has run.
	// This includes work functions that returned an error or panicked.
	Executed uint64

	// DeliveryFailures is the total number of delivery callbacks that
	// panicked. Delivery callbacks are documented as must-not-panic, so any
	// non-zero value points at a misbehaving caller.
	DeliveryFailures uint64

	// IdleWorkers is the number of workers currently registered as idle.
	IdleWorkers int

	// LiveWorkers is the number of worker threads currently alive,
	// whether idle or executing. Calculated as: Spawned - Exited.
	LiveWorkers int
}
