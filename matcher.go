package main

import (
	"sort"
	"time"
)

// SwipeResult is the outcome of recording one swipe.
type SwipeResult struct {
	Matched bool     `json:"matched"`
	Partner *Profile `json:"partner,omitempty"`
}

// MatchEntry is one confirmed match from a member's point of view.
type MatchEntry struct {
	Partner   Profile   `json:"partner"`
	MatchedAt time.Time `json:"matched_at"`
}

// RecordSwipe appends the swipe and, on a RIGHT that completes a mutual
// pair, records the match. Mutuality is existence-based: any historical
// RIGHT from the target counts, even if a later LEFT followed it.
//
// Match creation is idempotent per canonical pair: repeats and the reverse
// call order land on the same single MatchPair.
func (a *App) RecordSwipe(swiper, target string, direction SwipeDirection) (SwipeResult, error) {
	swiper, target = normalizeCode(swiper), normalizeCode(target)
	if !validCode(swiper) || !validCode(target) || swiper == target {
		return SwipeResult{}, errInvalidInput
	}
	if direction != SwipeLeft && direction != SwipeRight {
		return SwipeResult{}, errInvalidInput
	}
	if _, err := a.profiles.Get(swiper); err != nil {
		return SwipeResult{}, err
	}
	partner, err := a.profiles.Get(target)
	if err != nil {
		return SwipeResult{}, err
	}

	if err := a.events.AppendSwipe(SwipeEvent{
		Swiper:    swiper,
		Target:    target,
		Direction: direction,
		At:        a.now(),
	}); err != nil {
		return SwipeResult{}, err
	}

	if direction != SwipeRight {
		return SwipeResult{}, nil
	}

	mutual, err := a.hasRightSwipe(target, swiper)
	if err != nil {
		return SwipeResult{}, err
	}
	if !mutual {
		return SwipeResult{}, nil
	}

	memberA, memberB := canonicalPair(swiper, target)
	exists, err := a.pairRecorded(swiper, target)
	if err != nil {
		return SwipeResult{}, err
	}
	if !exists {
		// AppendMatch re-checks for the pair right before writing, so two
		// concurrent mutual RIGHTs still produce a single record.
		if err := a.events.AppendMatch(MatchPair{
			MemberA: memberA,
			MemberB: memberB,
			At:      a.now(),
		}); err != nil {
			return SwipeResult{}, err
		}
	}
	return SwipeResult{Matched: true, Partner: &partner}, nil
}

// hasRightSwipe reports whether swiper has ever recorded a RIGHT on target.
func (a *App) hasRightSwipe(swiper, target string) (bool, error) {
	swipes, err := a.events.ScanSwipes(SwipeFilter{
		Swiper:    swiper,
		Target:    target,
		Direction: SwipeRight,
	})
	if err != nil {
		return false, err
	}
	return len(swipes) > 0, nil
}

func (a *App) pairRecorded(x, y string) (bool, error) {
	pairs, err := a.events.ScanMatches(normalizeCode(x))
	if err != nil {
		return false, err
	}
	key := pairKey(x, y)
	for _, m := range pairs {
		if pairKey(m.MemberA, m.MemberB) == key {
			return true, nil
		}
	}
	return false, nil
}

// ListMatches returns the member's confirmed matches, most recent first,
// deduplicated by canonical pair key (the most recent record wins when the
// backing store tolerated a racy duplicate).
func (a *App) ListMatches(code string) ([]MatchEntry, error) {
	code = normalizeCode(code)
	if !validCode(code) {
		return nil, errInvalidInput
	}
	if _, err := a.profiles.Get(code); err != nil {
		return nil, err
	}

	pairs, err := a.events.ScanMatches(code)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]MatchPair, len(pairs))
	for _, m := range pairs {
		k := pairKey(m.MemberA, m.MemberB)
		if cur, ok := latest[k]; !ok || m.At.After(cur.At) {
			latest[k] = m
		}
	}

	entries := make([]MatchEntry, 0, len(latest))
	for _, m := range latest {
		partnerCode := normalizeCode(m.MemberA)
		if partnerCode == code {
			partnerCode = normalizeCode(m.MemberB)
		}
		partner, err := a.profiles.Get(partnerCode)
		if err != nil {
			// Profiles are never deleted, but a missing partner should not
			// take down the whole listing.
			continue
		}
		entries = append(entries, MatchEntry{Partner: partner, MatchedAt: m.At})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].MatchedAt.Equal(entries[j].MatchedAt) {
			return entries[i].MatchedAt.After(entries[j].MatchedAt)
		}
		return entries[i].Partner.Code < entries[j].Partner.Code
	})
	return entries, nil
}
