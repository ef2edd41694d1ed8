// Package mirror keeps an optimistic local copy of the signed-in user's cart.
package mirror

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"storefront/internal/domain"
)

// Pusher forwards cart mutations to the server.
type Pusher interface {
	AddToCart(ctx context.Context, productID, size string, qty int) error
	UpdateCart(ctx context.Context, productID, size string, qty int) error
}

// CartMirror applies every mutation locally first and then pushes it to
// the server in the background. Pushes are sent one at a time in mutation
// order. A failed push is logged and never rolls back the local state; the
// server copy wins again at the next Load.
type CartMirror struct {
	mu     sync.Mutex
	cart   domain.Cart
	pusher Pusher
	logger *log.Logger

	timeout     time.Duration
	onPushError func(op, productID, size string, err error)

	// guarded by mu
	queue    []pushJob
	draining bool

	wg sync.WaitGroup
}

type pushJob struct {
	op        string
	productID string
	size      string
	send      func(ctx context.Context) error
}

type Option func(*CartMirror)

// WithPushTimeout bounds each background push.
func WithPushTimeout(d time.Duration) Option {
	return func(m *CartMirror) { m.timeout = d }
}

// OnPushError registers a hook called after a push fails.
func OnPushError(fn func(op, productID, size string, err error)) Option {
	return func(m *CartMirror) { m.onPushError = fn }
}

func New(pusher Pusher, logger *log.Logger, opts ...Option) *CartMirror {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &CartMirror{
		cart:    domain.NewCart(),
		pusher:  pusher,
		logger:  logger,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPusher swaps the push target; nil keeps mutations local (signed out).
func (m *CartMirror) SetPusher(p Pusher) {
	m.mu.Lock()
	m.pusher = p
	m.mu.Unlock()
}

// Add adds qty to the local variant quantity. A negative qty subtracts, and
// an entry that drops to zero or below is removed.
func (m *CartMirror) Add(productID, size string, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.AddQuantity(productID, size, qty)
	if p := m.pusher; p != nil {
		m.enqueueLocked(pushJob{"add", productID, size, func(ctx context.Context) error {
			return p.AddToCart(ctx, productID, size, qty)
		}})
	}
}

// Update sets the absolute quantity; zero or less removes the entry.
func (m *CartMirror) Update(productID, size string, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.SetQuantity(productID, size, qty)
	if p := m.pusher; p != nil {
		m.enqueueLocked(pushJob{"update", productID, size, func(ctx context.Context) error {
			return p.UpdateCart(ctx, productID, size, qty)
		}})
	}
}

// Load replaces the local cart with the server document.
func (m *CartMirror) Load(cart domain.Cart) {
	m.mu.Lock()
	m.cart = cart.Clone()
	m.mu.Unlock()
}

// Reset empties the local cart without touching the server.
func (m *CartMirror) Reset() {
	m.mu.Lock()
	m.cart = domain.NewCart()
	m.mu.Unlock()
}

// Snapshot returns a copy of the local cart.
func (m *CartMirror) Snapshot() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

func (m *CartMirror) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.TotalCount()
}

// Amount prices the local cart against catalog.
func (m *CartMirror) Amount(catalog domain.ProductLookup) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.ResolveAmount(catalog).StringFixed(2)
}

// Wait blocks until every queued push has been sent.
func (m *CartMirror) Wait() {
	m.wg.Wait()
}

// enqueueLocked appends job behind earlier pushes and starts the drain
// goroutine when none is running. m.mu must be held.
func (m *CartMirror) enqueueLocked(job pushJob) {
	m.wg.Add(1)
	m.queue = append(m.queue, job)
	if m.draining {
		return
	}
	m.draining = true
	go m.drain()
}

func (m *CartMirror) drain() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.draining = false
			m.mu.Unlock()
			return
		}
		job := m.queue[0]
		m.queue[0] = pushJob{}
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.send(job)
		m.wg.Done()
	}
}

func (m *CartMirror) send(job pushJob) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	if err := job.send(ctx); err != nil {
		m.logger.Printf("cart mirror: %s %s/%s push failed: %v", job.op, job.productID, job.size, err)
		if m.onPushError != nil {
			m.onPushError(job.op, job.productID, job.size, err)
		}
	}
}
