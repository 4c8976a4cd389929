package application

import "sync"

// formLocks serializes transitions on the same form inside one process.
// Entries are reference counted and dropped once unused.
type formLocks struct {
	mu    sync.Mutex
	locks map[string]*formLock
}

type formLock struct {
	sync.Mutex
	refs int
}

func newFormLocks() *formLocks {
	return &formLocks{locks: make(map[string]*formLock)}
}

// Lock blocks until id is free and returns the matching unlock.
func (l *formLocks) Lock(id string) func() {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &formLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *formLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
