package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// App wires the matching core to its stores. It is safe for concurrent use:
// every operation re-reads store state and keeps nothing between requests.
type App struct {
	profiles ProfileStore
	events   InteractionLog
	cfg      MatchConfig

	// rng seeds the fallback tie-break; nil means the process-wide source.
	rng *rand.Rand
	now func() time.Time
}

func newApp(profiles ProfileStore, events InteractionLog, cfg MatchConfig) *App {
	return &App{
		profiles: profiles,
		events:   events,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Register normalizes the payload, allocates a fresh member code and appends
// the profile. Codes are retried on the unlikely collision.
func (a *App) Register(p Profile) (Profile, error) {
	p.Interests = normalizeInterests(p.Interests)
	p.CreatedAt = a.now()

	for attempt := 0; attempt < 5; attempt++ {
		code, err := newMemberCode()
		if err != nil {
			return Profile{}, err
		}
		p.Code = code
		err = a.profiles.Append(p)
		if errors.Is(err, errDuplicateProfile) {
			continue
		}
		if err != nil {
			return Profile{}, err
		}
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: could not allocate a unique member code", errStoreUnavailable)
}

// GetProfile looks up a member by code.
func (a *App) GetProfile(code string) (Profile, error) {
	code = normalizeCode(code)
	if !validCode(code) {
		return Profile{}, errInvalidInput
	}
	return a.profiles.Get(code)
}

// RankCandidates returns up to n suggestions for the member, recording an
// exposure event for each surfaced candidate.
func (a *App) RankCandidates(code string, n int) ([]RankedCandidate, error) {
	code = normalizeCode(code)
	if !validCode(code) {
		return nil, errInvalidInput
	}
	requester, err := a.profiles.Get(code)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = a.cfg.DefaultSuggestions
	}

	profiles, err := a.profiles.GetAll()
	if err != nil {
		return nil, err
	}
	swipes, err := a.events.ScanSwipes(SwipeFilter{Swiper: code})
	if err != nil {
		return nil, err
	}
	matches, err := a.events.ScanMatches(code)
	if err != nil {
		return nil, err
	}
	lastShown, err := a.events.LastShown(code)
	if err != nil {
		return nil, err
	}

	snap := rankSnapshot{
		Profiles:  profiles,
		Swipes:    swipes,
		Matches:   matches,
		LastShown: lastShown,
	}
	ranked := rankCandidates(requester, snap, n, a.cfg, a.rng, a.now())

	// Exposure tracking is best effort; a failed append must not cost the
	// member their suggestions.
	shownAt := a.now()
	for _, rc := range ranked {
		if err := a.events.AppendShown(ShownEvent{Viewer: code, Shown: rc.Profile.Code, At: shownAt}); err != nil {
			log.Println("Warning: failed to record exposure:", err)
			break
		}
	}
	return ranked, nil
}
