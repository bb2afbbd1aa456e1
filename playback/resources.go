package playback

import "sync"

// Resources tracks session-scoped cleanup functions: the heartbeat ticker
// stop, player event observer cancels, temporary subtitle payload files.
// ReleaseAll runs every registered function once and may be called on every
// exit path without harm.
type Resources struct {
	mu      sync.Mutex
	handles []func()
}

// Register adds a cleanup function to run on the next ReleaseAll.
func (r *Resources) Register(release func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = append(r.handles, release)
}

// ReleaseAll runs and forgets every registered cleanup function, in reverse
// registration order. Calling it again is a no-op until new handles arrive.
func (r *Resources) ReleaseAll() {
	r.mu.Lock()
	handles := r.handles
	r.handles = nil
	r.mu.Unlock()

	for i := len(handles) - 1; i >= 0; i-- {
		handles[i]()
	}
}

// Len reports the number of currently tracked handles.
func (r *Resources) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
