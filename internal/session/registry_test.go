package session

import (
	"context"
	"testing"
	"time"

	"github.com/mr1hm/go-city-globe/internal/models"
)

func TestRegistry_CreateGetDelete(t *testing.T) {
	repo := &fakeRepo{cities: []models.City{paris, tokyo}}
	r := NewRegistry(repo, &recordingSink{}, testOptions(), time.Minute)

	e := r.Create(800)
	if e.ID() == "" {
		t.Fatal("expected session id")
	}
	if e.opts.ViewportWidth != 800 {
		t.Errorf("expected viewport width 800, got %d", e.opts.ViewportWidth)
	}

	got, ok := r.Get(e.ID())
	if !ok || got != e {
		t.Fatal("expected to get back the same engine")
	}

	r.Delete(e.ID())
	if _, ok := r.Get(e.ID()); ok {
		t.Error("expected session gone after delete")
	}
	// Deleting again is a no-op.
	r.Delete(e.ID())
}

func TestRegistry_CreateKeepsDefaultViewport(t *testing.T) {
	repo := &fakeRepo{cities: []models.City{paris}}
	r := NewRegistry(repo, &recordingSink{}, testOptions(), time.Minute)

	e := r.Create(0)
	if e.opts.ViewportWidth != testOptions().ViewportWidth {
		t.Errorf("expected default viewport, got %d", e.opts.ViewportWidth)
	}
}

func TestRegistry_JanitorEvictsStale(t *testing.T) {
	repo := &fakeRepo{cities: []models.City{paris}}
	r := NewRegistry(repo, &recordingSink{}, testOptions(), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	e := r.Create(0)

	// The janitor ticks at least once a second; trigger eviction directly
	// after the TTL passes instead of waiting for the tick.
	time.Sleep(80 * time.Millisecond)
	r.evictStale()

	if _, ok := r.Get(e.ID()); ok {
		t.Error("expected stale session evicted")
	}
	if r.Count() != 0 {
		t.Errorf("expected empty registry, got %d", r.Count())
	}

	cancel()
	r.Stop()
}
