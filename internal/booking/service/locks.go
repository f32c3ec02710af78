package service

import "sync"

// resourceLocks serializes booking writes per resource so the
// check-charge-insert unit never interleaves with another writer on the same
// resource. Lock entries are created on first use and kept for the process
// lifetime; the set of resources is small and stable.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the resource's mutex and returns its release func.
func (r *resourceLocks) acquire(resourceID string) func() {
	r.mu.Lock()
	lock, ok := r.locks[resourceID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[resourceID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
