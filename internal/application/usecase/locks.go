package usecase

import "sync"

// RecordLocks serializes collection mutations per parent record: one
// in-flight edit per record at a time, shared between the ingest and
// collection usecases.
type RecordLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRecordLocks() *RecordLocks {
	return &RecordLocks{locks: make(map[string]*sync.Mutex)}
}

func (r *RecordLocks) Lock(parentID string) func() {
	r.mu.Lock()
	lock, ok := r.locks[parentID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[parentID] = lock
	}
	r.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
