package ingest

import "sync"

// brandLocks serializes ingestion per library URL so two concurrent requests
// for the same brand cannot interleave their upserts and status writes.
type brandLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBrandLocks() *brandLocks {
	return &brandLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns its release func.
func (b *brandLocks) acquire(key string) func() {
	b.mu.Lock()
	l, ok := b.locks[key]
	if !ok {
		l = &sync.Mutex{}
		b.locks[key] = l
	}
	b.mu.Unlock()

	l.Lock()
	return l.Unlock
}
