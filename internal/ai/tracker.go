package ai

import (
	"context"
	"sync"
)

// Tracker hands out request tokens so that only the newest response for a
// given target is applied. Starting a request cancels the one before it.
type Tracker struct {
	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// Start begins a tracked request. release must be called once the response
// has been handled.
func (t *Tracker) Start(parent context.Context) (ctx context.Context, token uint64, release func()) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.latest++
	token = t.latest
	t.cancel = cancel
	t.mu.Unlock()

	release = func() {
		t.mu.Lock()
		if t.latest == token {
			t.cancel = nil
		}
		t.mu.Unlock()
		cancel()
	}
	return ctx, token, release
}

// Current reports whether token belongs to the newest request
func (t *Tracker) Current(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest == token
}
