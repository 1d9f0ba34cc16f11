package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// window is the counter for one client.
type window struct {
	resetAt time.Time
	key     string
	count   int
}

// Memory is an in-process fixed-window limiter.
//
// Counters live in a map with a doubly-linked list ordered by last use.
// A janitor goroutine drops expired windows, and WithMaxEntries evicts the
// least recently seen client when the map is full, so memory stays bounded
// however many distinct clients show up.
type Memory struct {
	items  map[string]*list.Element
	lru    *list.List
	opts   *options
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory limiter and starts its janitor.
// Call Close to stop the janitor.
func NewMemory(opts ...Option) *Memory {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items: make(map[string]*list.Element),
		lru:   list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.sweepInterval > 0 {
		go m.janitor()
	}

	return m
}

// Allow records a request for key and reports whether it may proceed.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Decision{}, ErrClosed
	}

	now := m.opts.now()
	limit := m.opts.limit

	elem, ok := m.items[key]
	if !ok {
		if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
			m.evictOldest()
		}
		elem = m.lru.PushFront(&window{key: key})
		m.items[key] = elem
	} else {
		m.lru.MoveToFront(elem)
	}

	w := elem.Value.(*window)

	// New client or expired window: start over.
	if !ok || now.After(w.resetAt) {
		w.count = 1
		w.resetAt = now.Add(m.opts.window)
		return Decision{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: w.resetAt}, nil
	}

	if w.count >= limit {
		return Decision{Allowed: false, Limit: limit, Remaining: 0, ResetAt: w.resetAt}, nil
	}

	w.count++
	return Decision{Allowed: true, Limit: limit, Remaining: limit - w.count, ResetAt: w.resetAt}, nil
}

// Len returns the number of tracked clients.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Sweep drops every expired window and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	removed := 0
	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*window).resetAt) {
			m.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Close stops the janitor. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)

	return nil
}

// Shutdown returns a shutdown hook that closes the limiter.
func (m *Memory) Shutdown() func(context.Context) error {
	return func(context.Context) error {
		return m.Close()
	}
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// evictOldest removes the least recently seen client.
// Caller must hold the mutex.
func (m *Memory) evictOldest() {
	if elem := m.lru.Back(); elem != nil {
		m.removeElement(elem)
	}
}

// Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.lru.Remove(elem)
	delete(m.items, elem.Value.(*window).key)
}

var _ Limiter = (*Memory)(nil)
