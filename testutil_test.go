package main

import (
	"math/rand"
	"testing"
	"time"
)

// newTestApp builds an App over a fresh in-memory store with the default
// config and a fixed-seed random source, so fallback ordering is stable.
func newTestApp(t *testing.T) (*App, *memoryStore) {
	t.Helper()
	m := newMemoryStore()
	app := newApp(m, m, defaultMatchConfig())
	app.rng = rand.New(rand.NewSource(1))
	return app, m
}

func mustSeed(t *testing.T, m *memoryStore, p Profile) Profile {
	t.Helper()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	}
	if p.Name == "" {
		p.Name = "Member " + p.Code
	}
	if err := m.Append(p); err != nil {
		t.Fatalf("seeding profile %s: %v", p.Code, err)
	}
	return p
}
