package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDBState_Record(t *testing.T) {
	t.Parallel()

	state := NewDBState()
	if state.Connected() {
		t.Fatalf("expected new state to be disconnected")
	}

	state.Record(errors.New("dial tcp: connection refused"))
	snap := state.Snapshot()
	if snap.Connected || snap.Attempts != 1 || snap.LastError == "" {
		t.Fatalf("unexpected snapshot after failure: %+v", snap)
	}

	state.Record(nil)
	snap = state.Snapshot()
	if !snap.Connected || snap.Attempts != 2 || snap.LastError != "" {
		t.Fatalf("unexpected snapshot after success: %+v", snap)
	}
}

type flakyPinger struct {
	calls atomic.Int32
}

func (p *flakyPinger) PingContext(context.Context) error {
	if p.calls.Add(1) == 1 {
		return errors.New("connection reset")
	}
	return nil
}

func TestDBState_MonitorRecordsPings(t *testing.T) {
	t.Parallel()

	state := NewDBState()
	state.MarkConnected()
	pinger := &flakyPinger{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		state.Monitor(ctx, pinger, 5*time.Millisecond, nil)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for pinger.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if pinger.calls.Load() < 2 {
		t.Fatalf("expected at least two pings, got %d", pinger.calls.Load())
	}
	if state.Snapshot().Attempts < 1 {
		t.Fatalf("expected recorded attempts, got %+v", state.Snapshot())
	}
}
