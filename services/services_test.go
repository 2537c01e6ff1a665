package services

import (
	"sync"
	"testing"
	"time"

	"hausa-platform/cache"
	"hausa-platform/config"
	"hausa-platform/database"
	"hausa-platform/database/dbtest"
	"hausa-platform/events"
	"hausa-platform/metrics"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	*Services
	store *database.Store
	hub   *events.Hub
	cache *cache.Memory
	clock *fakeClock
}

func newHarness(t testing.TB) *harness {
	t.Helper()

	store := dbtest.New(t)
	h := &harness{
		store: store,
		hub:   events.NewHub(),
		cache: cache.NewMemory(time.Hour),
		clock: newClock(),
	}
	h.Services = New(store, Options{
		Auth: config.AuthConfig{
			JWTSecret:     "test-jwt-secret",
			SessionSecret: "test-session-secret",
			TokenTTL:      24 * time.Hour,
			RememberTTL:   30 * 24 * time.Hour,
		},
		DailyGoal: 50,
		Cache:     h.cache,
		Events:    h.hub,
		Metrics:   metrics.NewMetrics(),
		Now:       h.clock.Now,
	})
	return h
}
