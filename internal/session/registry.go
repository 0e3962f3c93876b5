package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mr1hm/go-city-globe/internal/catalog"
)

// Registry tracks live sessions and evicts the ones nobody has touched
// within the TTL.
type Registry struct {
	repo catalog.CityRepository
	sink Sink
	opts Options
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]*liveSession
	wg       sync.WaitGroup
}

type liveSession struct {
	engine   *Engine
	lastSeen time.Time
}

func NewRegistry(repo catalog.CityRepository, sink Sink, opts Options, ttl time.Duration) *Registry {
	return &Registry{
		repo:     repo,
		sink:     sink,
		opts:     opts,
		ttl:      ttl,
		sessions: make(map[string]*liveSession),
	}
}

// Start launches the eviction janitor.
func (r *Registry) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.runJanitor(ctx)
}

func (r *Registry) runJanitor(ctx context.Context) {
	defer r.wg.Done()

	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor shutting down")
			return
		case <-ticker.C:
			r.evictStale()
		}
	}
}

func (r *Registry) evictStale() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			s.engine.Shutdown()
			delete(r.sessions, id)
			slog.Debug("evicted stale session", "id", id)
		}
	}
}

// Create opens a new session. viewportWidth <= 0 keeps the default.
func (r *Registry) Create(viewportWidth int) *Engine {
	opts := r.opts
	if viewportWidth > 0 {
		opts.ViewportWidth = viewportWidth
	}

	id := uuid.NewString()
	engine := NewEngine(id, r.repo, r.sink, opts)

	r.mu.Lock()
	r.sessions[id] = &liveSession{engine: engine, lastSeen: time.Now()}
	r.mu.Unlock()

	return engine
}

// Get returns the session and refreshes its eviction deadline.
func (r *Registry) Get(id string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = time.Now()
	return s.engine, true
}

// Delete removes a session and cancels its pending timers. Deleting an
// unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.engine.Shutdown()
		delete(r.sessions, id)
	}
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop waits for the janitor and shuts down all remaining sessions.
func (r *Registry) Stop() {
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.engine.Shutdown()
		delete(r.sessions, id)
	}
}
