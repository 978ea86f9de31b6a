package utils

import "sync"

// KeyedMutex serializes work per key. Every mutating booking operation runs
// inside the critical section for its booking id, so interleaved calls from
// the two participants always observe a consistent prior state; operations
// on different bookings proceed in parallel.
//
// Mutexes are created on first use and kept for the life of the process.
// Keys are booking ids, whose working set is small enough that reclamation
// is not worth the bookkeeping.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
