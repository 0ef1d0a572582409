package contracts

import (
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/golang/groupcache/singleflight"
)

// Memo caches exercise traces by contract and year. Concurrent requests for the
// same key are computed once. It is safe for concurrent use.
//
// Inputs are assumed immutable until Purge is called. A computation started
// before a Purge is returned to its callers but never cached.
type Memo struct {
	mu    sync.Mutex
	cache *lru.Cache
	gen   uint64 // incremented by Purge
	group singleflight.Group

	trace func(Contract, []Event, int) Exercise
}

// NewMemo returns a memo holding at most size exercises, unbounded if size is 0.
func NewMemo(size int) *Memo {
	return &Memo{cache: lru.New(size), trace: ExerciseTrace}
}

// Exercise returns the traced exercise of the contract for year.
func (m *Memo) Exercise(c Contract, history []Event, year int) Exercise {
	key := fmt.Sprintf("%s/%d", c.ID, year)

	m.mu.Lock()
	v, ok := m.cache.Get(key)
	gen := m.gen
	m.mu.Unlock()
	if ok {
		return v.(Exercise)
	}

	v, _ = m.group.Do(fmt.Sprintf("%d/%s", gen, key), func() (interface{}, error) {
		x := m.trace(c, history, year)
		m.mu.Lock()
		if m.gen == gen {
			m.cache.Add(key, x)
		}
		m.mu.Unlock()
		return x, nil
	})
	return v.(Exercise)
}

// Len returns the number of cached exercises.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

// Purge drops every cached exercise, including those still being computed.
func (m *Memo) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.cache.Clear()
}
