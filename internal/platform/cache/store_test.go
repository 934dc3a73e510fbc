package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "players:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "fixtures:list", 3)
	if _, ok := store.Get(context.Background(), "fixtures:list"); !ok {
		t.Fatalf("expected fresh entry to be cached")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "fixtures:list"); ok {
		t.Fatalf("expected expired entry to be evicted")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "news:list", 1)
	store.Set(ctx, "news:id:a", 2)
	store.Set(ctx, "store:list", 3)

	store.DeletePrefix(ctx, "news:")

	if _, ok := store.Get(ctx, "news:list"); ok {
		t.Fatalf("expected news:list to be deleted")
	}
	if _, ok := store.Get(ctx, "news:id:a"); ok {
		t.Fatalf("expected news:id:a to be deleted")
	}
	if _, ok := store.Get(ctx, "store:list"); !ok {
		t.Fatalf("expected store:list to remain")
	}
}

func TestStore_DeletePrefixDiscardsInFlightLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "players:list", func(context.Context) (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	store.DeletePrefix(ctx, "players:")
	close(release)
	<-done

	if _, ok := store.Get(ctx, "players:list"); ok {
		t.Fatalf("expected in-flight load started before invalidation to be discarded")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	loadErr := errors.New("db down")
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, loadErr
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "league:list", loader); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "league:list", loader)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if v != "ok" {
		t.Fatalf("expected retry value, got %v", v)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
