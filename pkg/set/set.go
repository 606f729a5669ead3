// Package set wraps gods' hashset with a read-write mutex so the set can
// be shared between request goroutines and config-reload callbacks.
package set

import (
	"sync"

	"github.com/emirpasic/gods/sets/hashset"
)

// ThreadSafeSet is a hashset.Set guarded by a sync.RWMutex. Wrap more of
// the hashset.Set surface here if a caller needs it.
type ThreadSafeSet struct {
	set     *hashset.Set
	rwMutex sync.RWMutex
}

// NewThreadSafeSet returns a set pre-populated with items.
func NewThreadSafeSet(items ...interface{}) *ThreadSafeSet {
	hashSet := hashset.New(items...)
	return &ThreadSafeSet{set: hashSet, rwMutex: sync.RWMutex{}}
}

// Contains reports whether every item is in the set. Concurrent readers
// do not block each other.
func (t *ThreadSafeSet) Contains(items ...interface{}) bool {
	t.rwMutex.RLock()
	defer t.rwMutex.RUnlock()
	return t.set.Contains(items...)
}

func (t *ThreadSafeSet) Add(items ...interface{}) {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Add(items...)
}

func (t *ThreadSafeSet) Remove(items ...interface{}) {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Remove(items...)
}

func (t *ThreadSafeSet) Clear() {
	t.rwMutex.Lock()
	defer t.rwMutex.Unlock()
	t.set.Clear()
}
