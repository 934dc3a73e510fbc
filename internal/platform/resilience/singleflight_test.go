package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("players:list", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_ForgetStartsFreshCall(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = g.Do("news:list", func() (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()
	<-started

	g.ForgetPrefix("news:")

	v, err, shared := g.Do("news:list", func() (any, error) {
		return "fresh", nil
	})
	close(release)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shared {
		t.Fatalf("expected a fresh call after forget")
	}
	if v != "fresh" {
		t.Fatalf("expected fresh value, got %v", v)
	}
}

func TestSingleFlight_PanicReleasesWaiters(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})
	recovered := make(chan any, 1)

	go func() {
		defer func() { recovered <- recover() }()
		_, _, _ = g.Do("store:list", func() (any, error) {
			close(started)
			<-release
			panic("boom")
		})
	}()
	<-started

	joined := make(chan error, 1)
	go func() {
		_, err, _ := g.Do("store:list", func() (any, error) {
			return "unexpected", nil
		})
		joined <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case err := <-joined:
		if !errors.Is(err, ErrCallPanicked) && err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("joined caller blocked after panic")
	}
	if r := <-recovered; r != "boom" {
		t.Fatalf("expected panic to reach the caller, got %v", r)
	}

	v, err, _ := g.Do("store:list", func() (any, error) {
		return "fresh", nil
	})
	if err != nil || v != "fresh" {
		t.Fatalf("expected fresh call after panic, got %v %v", v, err)
	}
}
