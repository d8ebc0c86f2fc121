// Package cache holds the client's single shared snapshot of server-side
// resources. Every view reads and invalidates through one Store so the same
// entity is never displayed in two divergent versions.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Fetcher loads one resource from the backend.
type Fetcher func(ctx context.Context) (interface{}, error)

// Snapshot is the cached state of one key.
type Snapshot struct {
	Value     interface{}
	FetchedAt time.Time
	Stale     bool
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
	stale     bool
}

type call struct {
	done       chan struct{}
	value      interface{}
	err        error
	superseded bool
}

// Store is a keyed, time-stamped cache of fetched server resources. Reads
// under the same key are de-duplicated: a second concurrent fetch attaches to
// the in-flight one instead of issuing its own network call. A successful
// mutation invalidates the declared key prefixes; a failed one leaves the
// cache untouched. The invariant under concurrent invalidation and refetch is
// "last completed fetch for a key is authoritative".
type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	inflight    map[string]*call
	subscribers map[int]func(key string)
	nextSubID   int
	now         func() time.Time
}

// NewStore creates an empty cache. One Store is created per application
// session and passed to every consumer.
func NewStore() *Store {
	return &Store{
		entries:     make(map[string]*entry),
		inflight:    make(map[string]*call),
		subscribers: make(map[int]func(string)),
		now:         time.Now,
	}
}

// Get returns the current snapshot for a key without triggering a fetch.
func (s *Store) Get(key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Value: e.value, FetchedAt: e.fetchedAt, Stale: e.stale}, true
}

// Fetch returns the cached value for key, or loads it with fetch. Concurrent
// callers for the same key share a single fetch. If the key is invalidated
// while the fetch is in flight, the fetch is restarted rather than committing
// a result that may predate the mutation; callers receive the restarted
// result. A fetch error is returned to the caller and does not disturb any
// previously cached value.
func (s *Store) Fetch(ctx context.Context, key string, fetch Fetcher) (interface{}, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && !e.stale {
		s.mu.Unlock()
		return e.value, nil
	}
	if c, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-c.done:
			return c.value, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	s.inflight[key] = c
	s.mu.Unlock()

	for {
		value, err := fetch(ctx)

		s.mu.Lock()
		if c.superseded && err == nil && ctx.Err() == nil {
			c.superseded = false
			s.mu.Unlock()
			continue
		}
		if err == nil {
			s.entries[key] = &entry{value: value, fetchedAt: s.now()}
		}
		delete(s.inflight, key)
		c.value, c.err = value, err
		s.mu.Unlock()

		close(c.done)
		if err == nil {
			s.notify(key)
		}
		return value, err
	}
}

// Invalidate marks every key with the given prefix stale, forcing the next
// Fetch to hit the backend. In-flight fetches under a matching key are
// flagged for restart.
func (s *Store) Invalidate(prefixes ...string) {
	var touched []string

	s.mu.Lock()
	for key, e := range s.entries {
		if matchesAny(key, prefixes) && !e.stale {
			e.stale = true
			touched = append(touched, key)
		}
	}
	for key, c := range s.inflight {
		if matchesAny(key, prefixes) {
			c.superseded = true
		}
	}
	s.mu.Unlock()

	for _, key := range touched {
		s.notify(key)
	}
}

// Mutate runs a mutation against the backend. On success the declared
// prefixes are invalidated so every dependent view refetches; on error the
// cache is left exactly as it was.
func (s *Store) Mutate(ctx context.Context, do func(ctx context.Context) error, invalidates ...string) error {
	if err := do(ctx); err != nil {
		return err
	}
	s.Invalidate(invalidates...)
	return nil
}

// Subscribe registers a change listener called with the affected key after a
// fetch commits or an invalidation lands. The returned function removes the
// subscription.
func (s *Store) Subscribe(fn func(key string)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

func matchesAny(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
