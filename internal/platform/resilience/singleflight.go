package resilience

import (
	"errors"
	"sync"
)

// ErrCallPanicked is returned to callers that joined a call whose function panicked.
var ErrCallPanicked = errors.New("singleflight call panicked")

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Do runs fn once per key at a time; concurrent callers share the result.
// The last return value reports whether the result was shared. A panic in fn
// propagates to its caller while joined callers receive ErrCallPanicked.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	completed := false
	defer func() {
		if !completed {
			c.val, c.err = nil, ErrCallPanicked
		}
		g.mu.Lock()
		if g.calls[key] == c {
			delete(g.calls, key)
		}
		g.mu.Unlock()
		c.wg.Done()
	}()

	c.val, c.err = fn()
	completed = true

	return c.val, c.err, false
}

// Forget drops an in-flight key so the next caller starts a fresh call
// instead of joining one whose result is already stale.
func (g *SingleFlight) Forget(key string) {
	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
}

// ForgetPrefix drops every in-flight key with the given prefix.
func (g *SingleFlight) ForgetPrefix(prefix string) {
	g.mu.Lock()
	for key := range g.calls {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(g.calls, key)
		}
	}
	g.mu.Unlock()
}
