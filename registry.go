package spindle

import "sync"

// idleRegistry tracks the workers currently available for new jobs.
//
// It is a mutex-guarded LIFO stack with an index map, so that insert,
// remove-by-key, and pop-most-recent are all short critical sections that
// are mutually atomic: no operation can observe a partial effect of
// another, and no two removals can ever return the same worker. The LIFO
// order is maintained explicitly rather than relying on any container's
// incidental ordering.
type idleRegistry struct {
	mu    sync.Mutex
	stack []*worker       // idle workers, most recently inserted last
	index map[*worker]int // position of each worker in stack
}

func newIdleRegistry() *idleRegistry {
	return &idleRegistry{
		index: make(map[*worker]int),
	}
}

// insert registers w as idle. Inserting a worker that is already registered
// is a no-op.
func (r *idleRegistry) insert(w *worker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[w]; ok {
		return
	}
	r.index[w] = len(r.stack)
	r.stack = append(r.stack, w)
}

// remove unregisters w and reports whether it was present. A false return
// means another party already claimed w, which only happens as the first
// step of assigning it a job.
func (r *idleRegistry) remove(w *worker) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[w]
	if !ok {
		return false
	}
	r.deleteAt(i)
	return true
}

// pop removes and returns the most recently inserted worker, or (nil, false)
// when no worker is idle.
func (r *idleRegistry) pop() (*worker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stack) == 0 {
		return nil, false
	}
	w := r.stack[len(r.stack)-1]
	r.deleteAt(len(r.stack) - 1)
	return w, true
}

// size returns the number of idle workers.
func (r *idleRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// deleteAt removes the entry at position i while preserving the insertion
// order of the remaining entries. Caller must hold mu.
func (r *idleRegistry) deleteAt(i int) {
	delete(r.index, r.stack[i])
	copy(r.stack[i:], r.stack[i+1:])
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	for j := i; j < len(r.stack); j++ {
		r.index[r.stack[j]] = j
	}
}
