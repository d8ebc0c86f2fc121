package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"poddash/types"
)

func TestFetchCachesValue(t *testing.T) {
	s := NewStore()
	calls := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.Fetch(context.Background(), "feeds", fetch)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if v != "value" {
			t.Fatalf("Fetch = %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("fetcher ran %d times; repeated reads must hit the cache", calls)
	}
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	s := NewStore()
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Fetch(context.Background(), "episodes:all", fetch)
			if err != nil {
				t.Errorf("Fetch: %v", err)
			}
			results[i] = v
		}(i)
	}

	<-started
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetcher ran %d times; concurrent identical fetches must share one call", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Fatalf("result[%d] = %v", i, v)
		}
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	s := NewStore()
	calls := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	if v, _ := s.Fetch(context.Background(), "episodes:all", fetch); v != 1 {
		t.Fatalf("first fetch = %v", v)
	}
	s.Invalidate(EpisodesPrefix)
	if snap, ok := s.Get("episodes:all"); !ok || !snap.Stale {
		t.Fatalf("snapshot after invalidate = %+v, %v; want stale", snap, ok)
	}
	if v, _ := s.Fetch(context.Background(), "episodes:all", fetch); v != 2 {
		t.Fatalf("post-invalidate fetch = %v; want a refetch", v)
	}
}

func TestFetchErrorLeavesCacheUntouched(t *testing.T) {
	s := NewStore()
	good := func(ctx context.Context) (interface{}, error) { return "good", nil }
	bad := func(ctx context.Context) (interface{}, error) { return nil, errors.New("boom") }

	if _, err := s.Fetch(context.Background(), "feeds", good); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	s.Invalidate(FeedsKey)
	if _, err := s.Fetch(context.Background(), "feeds", bad); err == nil {
		t.Fatal("expected fetch error")
	}
	snap, ok := s.Get("feeds")
	if !ok || snap.Value != "good" {
		t.Fatalf("snapshot = %+v, %v; failed refetch must not destroy the prior value", snap, ok)
	}
}

func TestMutateInvalidatesOnSuccessOnly(t *testing.T) {
	s := NewStore()
	calls := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}
	key := EpisodeKey("ep1")
	s.Fetch(context.Background(), key, fetch)

	err := s.Mutate(context.Background(), func(ctx context.Context) error {
		return errors.New("rejected")
	}, EpisodesPrefix, key)
	if err == nil {
		t.Fatal("expected mutation error")
	}
	if snap, _ := s.Get(key); snap.Stale {
		t.Fatal("failed mutation must leave the cache untouched")
	}

	if err := s.Mutate(context.Background(), func(ctx context.Context) error {
		return nil
	}, EpisodesPrefix, key); err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if v, _ := s.Fetch(context.Background(), key, fetch); v != 2 {
		t.Fatalf("post-mutation fetch = %v; want a refetch", v)
	}
}

func TestInvalidateRestartsInflightFetch(t *testing.T) {
	s := NewStore()
	var calls int32
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
		}
		return int(n), nil
	}

	done := make(chan interface{}, 1)
	go func() {
		v, _ := s.Fetch(context.Background(), EpisodeKey("ep1"), fetch)
		done <- v
	}()

	<-firstStarted
	s.Invalidate(EpisodeKey("ep1"))
	close(releaseFirst)

	if v := <-done; v != 2 {
		t.Fatalf("fetch result = %v; an invalidated in-flight fetch must restart, not commit", v)
	}
	snap, ok := s.Get(EpisodeKey("ep1"))
	if !ok || snap.Value != 2 || snap.Stale {
		t.Fatalf("snapshot = %+v; the restarted fetch is authoritative", snap)
	}
}

func TestSubscribeNotifiesOnCommitAndInvalidate(t *testing.T) {
	s := NewStore()
	var mu sync.Mutex
	var seen []string
	unsubscribe := s.Subscribe(func(key string) {
		mu.Lock()
		seen = append(seen, key)
		mu.Unlock()
	})

	s.Fetch(context.Background(), "feeds", func(ctx context.Context) (interface{}, error) {
		return "v", nil
	})
	s.Invalidate(FeedsKey)

	mu.Lock()
	got := append([]string(nil), seen...)
	mu.Unlock()
	if len(got) != 2 || got[0] != "feeds" || got[1] != "feeds" {
		t.Fatalf("notifications = %v; want commit and invalidate", got)
	}

	unsubscribe()
	s.Invalidate(FeedsKey)
	mu.Lock()
	after := len(seen)
	mu.Unlock()
	if after != 2 {
		t.Fatalf("received %d notifications after unsubscribe", after)
	}
}

func TestEpisodeListKeySentinelNeverEncoded(t *testing.T) {
	key := EpisodeListKey(types.StatusCompleted, types.CategoryNone, 20, 0, false)
	if key != "episodes:completed::20:0:visible" {
		t.Fatalf("key = %q", key)
	}
	if EpisodeKey("abc") != "episode:abc" {
		t.Fatalf("EpisodeKey = %q", EpisodeKey("abc"))
	}
}
