package session

import "sync"

// Bus carries the process-wide "session expired" signal. It replaces the
// browser-style global event with an owned subscription list so tests can
// assert on delivery synchronously.
//
// PublishExpiry fans out to every subscriber before returning, so all
// listeners observe the signal before any of them finishes its own teardown.
// Listeners must tolerate duplicate signals and signals received while
// already logged out.
type Bus struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// SubscribeExpiry registers fn and returns its unsubscribe function.
func (b *Bus) SubscribeExpiry(fn func()) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) PublishExpiry() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
