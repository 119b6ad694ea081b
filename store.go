package main

import "time"

// SwipeFilter narrows a swipe-log scan. Empty fields match anything.
type SwipeFilter struct {
	Swiper    string
	Target    string
	Direction SwipeDirection
}

// ProfileStore is the keyed profile table. Get returns errNotFound for an
// unknown code; Append is append-if-absent and returns errDuplicateProfile
// when the code is already taken.
type ProfileStore interface {
	Get(code string) (Profile, error)
	GetAll() ([]Profile, error)
	Append(Profile) error
}

// InteractionLog holds the append-only swipe, exposure and match logs.
type InteractionLog interface {
	AppendSwipe(SwipeEvent) error
	ScanSwipes(SwipeFilter) ([]SwipeEvent, error)

	AppendShown(ShownEvent) error
	// LastShown returns, per surfaced code, the latest time the viewer saw it.
	LastShown(viewer string) (map[string]time.Time, error)

	// AppendMatch re-checks for the canonical pair immediately before
	// writing. Duplicate rows that slip through a race are tolerated; read
	// paths deduplicate by pair key regardless.
	AppendMatch(MatchPair) error
	// ScanMatches returns records involving code, or every record when code
	// is empty.
	ScanMatches(code string) ([]MatchPair, error)
}
