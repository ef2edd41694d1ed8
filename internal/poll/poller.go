// Package poll repeatedly fetches a value until its context is cancelled.
package poll

import (
	"context"
	"io"
	"log"
	"time"
)

// Result is one tick. Err is set when the fetch failed, so a failure is
// never mistaken for an empty value.
type Result[T any] struct {
	Value T
	Err   error
	At    time.Time
}

type Poller[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

func New[T any](interval time.Duration, fetch func(ctx context.Context) (T, error), logger *log.Logger) *Poller[T] {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Poller[T]{fetch: fetch, interval: interval, logger: logger, now: time.Now}
}

// Run fetches immediately and then once per interval. Fetches never
// overlap: a slow fetch delays the next tick instead of racing it. The
// returned channel is closed after ctx is cancelled.
func (p *Poller[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T])
	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			v, err := p.fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				p.logger.Printf("poll: fetch failed, retrying in %s: %v", p.interval, err)
			}
			select {
			case out <- Result[T]{Value: v, Err: err, At: p.now()}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
