package presence

import (
	"slices"
	"sync"
)

// nameLocks serializes operations per participant name.
// Entries are reference counted and dropped once no caller holds or waits on them.
type nameLocks struct {
	mu    sync.Mutex
	locks map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

func newNameLocks() *nameLocks {
	return &nameLocks{locks: make(map[string]*nameLock)}
}

// lock acquires the lock for name and returns its release function.
func (l *nameLocks) lock(name string) func() {
	l.mu.Lock()
	entry, ok := l.locks[name]
	if !ok {
		entry = &nameLock{}
		l.locks[name] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, name)
		}
		l.mu.Unlock()
	}
}

// lockAll acquires the locks for names in sorted order so that concurrent
// multi-name callers cannot deadlock.
func (l *nameLocks) lockAll(names []string) func() {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	releases := make([]func(), 0, len(sorted))
	for _, name := range sorted {
		releases = append(releases, l.lock(name))
	}
	return func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
}
