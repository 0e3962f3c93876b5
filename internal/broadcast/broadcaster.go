// Package broadcast fans session commands out to command-stream consumers.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-city-globe/internal/session"
)

type Broadcaster struct {
	subscribers map[uint64]subscriber
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

type subscriber struct {
	sessionID string
	ch        chan session.Command
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]subscriber),
	}
}

// Subscribe registers a consumer for one session's commands. The buffer
// covers a full compare choreography burst.
func (b *Broadcaster) Subscribe(sessionID string) (uint64, chan session.Command) {
	id := b.nextID.Add(1)
	ch := make(chan session.Command, 32)

	b.mu.Lock()
	b.subscribers[id] = subscriber{sessionID: sessionID, ch: ch}
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if sub, ok := b.subscribers[id]; ok {
		close(sub.ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Publish delivers a command to the subscribers of its session. Slow
// subscribers are skipped rather than blocking the engine.
func (b *Broadcaster) Publish(cmd session.Command) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.sessionID != cmd.SessionID {
			continue
		}
		select {
		case sub.ch <- cmd:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, ending their streams gracefully.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, id)
	}
}
