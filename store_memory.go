package main

import (
	"sync"
	"time"
)

// memoryStore backs local development (no DATABASE_URL) and the test suite.
// It implements both ProfileStore and InteractionLog behind one mutex.
type memoryStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
	order    []string
	swipes   []SwipeEvent
	shown    []ShownEvent
	matches  []MatchPair
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: make(map[string]Profile)}
}

func (m *memoryStore) Get(code string) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[normalizeCode(code)]
	if !ok {
		return Profile{}, errNotFound
	}
	return p, nil
}

func (m *memoryStore) GetAll() ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Profile, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, m.profiles[code])
	}
	return out, nil
}

func (m *memoryStore) Append(p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	code := normalizeCode(p.Code)
	if _, exists := m.profiles[code]; exists {
		return errDuplicateProfile
	}
	p.Code = code
	p.Interests = append([]string(nil), p.Interests...)
	m.profiles[code] = p
	m.order = append(m.order, code)
	return nil
}

func (m *memoryStore) AppendSwipe(s SwipeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Swiper = normalizeCode(s.Swiper)
	s.Target = normalizeCode(s.Target)
	m.swipes = append(m.swipes, s)
	return nil
}

func (m *memoryStore) ScanSwipes(f SwipeFilter) ([]SwipeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	swiper, target := normalizeCode(f.Swiper), normalizeCode(f.Target)
	var out []SwipeEvent
	for _, s := range m.swipes {
		if swiper != "" && s.Swiper != swiper {
			continue
		}
		if target != "" && s.Target != target {
			continue
		}
		if f.Direction != "" && s.Direction != f.Direction {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryStore) AppendShown(e ShownEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Viewer = normalizeCode(e.Viewer)
	e.Shown = normalizeCode(e.Shown)
	m.shown = append(m.shown, e)
	return nil
}

func (m *memoryStore) LastShown(viewer string) (map[string]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	viewer = normalizeCode(viewer)
	out := make(map[string]time.Time)
	for _, e := range m.shown {
		if e.Viewer != viewer {
			continue
		}
		if e.At.After(out[e.Shown]) {
			out[e.Shown] = e.At
		}
	}
	return out, nil
}

func (m *memoryStore) AppendMatch(pair MatchPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pair.MemberA, pair.MemberB = canonicalPair(pair.MemberA, pair.MemberB)
	// Existence re-check under the lock keeps the one-record-per-pair
	// invariant even when two mutual RIGHTs race.
	key := pairKey(pair.MemberA, pair.MemberB)
	for _, m2 := range m.matches {
		if pairKey(m2.MemberA, m2.MemberB) == key {
			return nil
		}
	}
	m.matches = append(m.matches, pair)
	return nil
}

func (m *memoryStore) ScanMatches(code string) ([]MatchPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code = normalizeCode(code)
	var out []MatchPair
	for _, pair := range m.matches {
		if code != "" && pair.MemberA != code && pair.MemberB != code {
			continue
		}
		out = append(out, pair)
	}
	return out, nil
}
