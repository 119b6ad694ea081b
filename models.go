package main

import (
	"strings"
	"time"
)

// Profile represents a cohort member's registration data used for matching.
type Profile struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Campus      string    `json:"campus"`
	Country     string    `json:"country"`
	Background  string    `json:"background"`
	Interests   []string  `json:"interests"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "LEFT"
	SwipeRight SwipeDirection = "RIGHT"
)

func parseDirection(s string) (SwipeDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LEFT":
		return SwipeLeft, nil
	case "RIGHT":
		return SwipeRight, nil
	}
	return "", errInvalidInput
}

// SwipeEvent is one accept/decline decision. The log is append-only, so the
// same (swiper, target) pair may appear multiple times as decisions change.
type SwipeEvent struct {
	Swiper    string         `json:"swiper"`
	Target    string         `json:"target"`
	Direction SwipeDirection `json:"direction"`
	At        time.Time      `json:"at"`
}

// ShownEvent records that a candidate was surfaced to a viewer in a
// suggestions response. Feeds the least-recently-surfaced fallback ordering.
type ShownEvent struct {
	Viewer string    `json:"viewer"`
	Shown  string    `json:"shown"`
	At     time.Time `json:"at"`
}

// MatchPair is a confirmed mutual match, stored with MemberA < MemberB so
// there is exactly one record per unordered pair.
type MatchPair struct {
	MemberA string    `json:"member_a"`
	MemberB string    `json:"member_b"`
	At      time.Time `json:"at"`
}

// canonicalPair orders two member codes under the fixed case-insensitive
// total order used as the pair key.
func canonicalPair(a, b string) (string, string) {
	a, b = normalizeCode(a), normalizeCode(b)
	if a > b {
		a, b = b, a
	}
	return a, b
}

func pairKey(a, b string) string {
	a, b = canonicalPair(a, b)
	return a + "|" + b
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeInterests lower-cases, trims and de-duplicates, keeping first-seen
// order so registration payloads round-trip predictably.
func normalizeInterests(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := normalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
