package reservation

import "sync"

// ownerLocks serializes reservation attempts per owner within one
// process. The database advisory lock still guards cross-process races;
// this keeps the common single-instance path from ever reaching the
// conflict recheck.
type ownerLocks struct {
	mu sync.Map
}

func (l *ownerLocks) lock(ownerID string) func() {
	v, _ := l.mu.LoadOrStore(ownerID, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
