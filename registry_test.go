package spindle

import (
	"sync"
	"testing"
)

// ============================================================================
// LIFO Ordering Tests
// ============================================================================

func TestIdleRegistry_PopIsLIFO(t *testing.T) {
	r := newIdleRegistry()
	w1, w2, w3 := &worker{id: 1}, &worker{id: 2}, &worker{id: 3}

	r.insert(w1)
	r.insert(w2)
	r.insert(w3)

	for _, want := range []*worker{w3, w2, w1} {
		got, ok := r.pop()
		if !ok {
			t.Fatal("pop() = empty, want worker")
		}
		if got != want {
			t.Errorf("pop() = worker %d, want worker %d", got.id, want.id)
		}
	}

	if _, ok := r.pop(); ok {
		t.Error("pop() on empty registry returned a worker")
	}
}

func TestIdleRegistry_RemovePreservesOrder(t *testing.T) {
	r := newIdleRegistry()
	w1, w2, w3 := &worker{id: 1}, &worker{id: 2}, &worker{id: 3}

	r.insert(w1)
	r.insert(w2)
	r.insert(w3)

	if !r.remove(w2) {
		t.Fatal("remove(w2) = false, want true")
	}

	// Removing a middle entry must not disturb LIFO order of the rest.
	for _, want := range []*worker{w3, w1} {
		got, ok := r.pop()
		if !ok || got != want {
			t.Errorf("pop() = %v, want worker %d", got, want.id)
		}
	}
}

func TestIdleRegistry_RemoveAbsent(t *testing.T) {
	r := newIdleRegistry()
	w := &worker{id: 1}

	if r.remove(w) {
		t.Error("remove() of absent worker = true, want false")
	}

	r.insert(w)
	if !r.remove(w) {
		t.Error("remove() of present worker = false, want true")
	}
	if r.remove(w) {
		t.Error("second remove() of same worker = true, want false")
	}
}

func TestIdleRegistry_InsertIdempotent(t *testing.T) {
	r := newIdleRegistry()
	w := &worker{id: 1}

	r.insert(w)
	r.insert(w)

	if r.size() != 1 {
		t.Errorf("size() = %d after double insert, want 1", r.size())
	}
	r.pop()
	if r.size() != 0 {
		t.Errorf("size() = %d after pop, want 0", r.size())
	}
}

// ============================================================================
// Mutual Exclusion Tests
// ============================================================================

func TestIdleRegistry_ConcurrentClaimsAreExclusive(t *testing.T) {
	const numWorkers = 128
	const numClaimers = 16

	r := newIdleRegistry()
	workers := make([]*worker, numWorkers)
	for i := range workers {
		workers[i] = &worker{id: uint64(i)}
		r.insert(workers[i])
	}

	var mu sync.Mutex
	claims := make(map[*worker]int)

	var wg sync.WaitGroup
	for g := 0; g < numClaimers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				w, ok := r.pop()
				if !ok {
					return
				}
				mu.Lock()
				claims[w]++
				mu.Unlock()
			}
		}()
	}

	// Racing removals from the "timeout" side must also be exclusive with
	// the pops above.
	for g := 0; g < numClaimers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := g; i < numWorkers; i += numClaimers {
				if r.remove(workers[i]) {
					mu.Lock()
					claims[workers[i]]++
					mu.Unlock()
				}
			}
		}(g)
	}
	wg.Wait()

	if len(claims) != numWorkers {
		t.Errorf("Claimed %d distinct workers, want %d", len(claims), numWorkers)
	}
	for w, n := range claims {
		if n != 1 {
			t.Errorf("Worker %d claimed %d times, want exactly once", w.id, n)
		}
	}
}
