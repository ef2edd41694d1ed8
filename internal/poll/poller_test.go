package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller_EmitsValuesAndErrors(t *testing.T) {
	var calls int32
	fetch := func(context.Context) (int, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 2 {
			return 0, errors.New("network down")
		}
		return int(n), nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := New(10*time.Millisecond, fetch, nil).Run(ctx)

	first := recv(t, results)
	if first.Err != nil || first.Value != 1 {
		t.Fatalf("unexpected first result %+v", first)
	}
	second := recv(t, results)
	if second.Err == nil {
		t.Fatalf("expected the failed tick to carry an error")
	}
	third := recv(t, results)
	if third.Err != nil || third.Value != 3 {
		t.Fatalf("expected recovery on the next tick, got %+v", third)
	}
}

func TestPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	results := New(5*time.Millisecond, func(context.Context) (string, error) { return "ok", nil }, nil).Run(ctx)
	recv(t, results)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-results:
			if !open {
				return
			}
		case <-deadline:
			t.Fatalf("channel not closed after cancel")
		}
	}
}

func TestPoller_FetchesDoNotOverlap(t *testing.T) {
	var inFlight, maxInFlight int32
	fetch := func(context.Context) (int, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(15 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return 0, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	results := New(time.Millisecond, fetch, nil).Run(ctx)
	for i := 0; i < 4; i++ {
		recv(t, results)
	}
	cancel()
	for range results {
	}
	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Fatalf("expected serialized fetches, saw %d concurrent", got)
	}
}

func recv[T any](t *testing.T, ch <-chan Result[T]) Result[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed early")
		}
		return r
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for result")
	}
	panic("unreachable")
}
