package cache

import "sync"

// KeyLock hands out one mutex per key so that work on different keys runs in
// parallel while work on the same key is serialized.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*keyMutex
}

type keyMutex struct {
	sync.Mutex
	refs int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*keyMutex)}
}

// Lock acquires the mutex for key and returns its release func.
func (k *KeyLock) Lock(key string) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &keyMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
