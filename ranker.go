package main

import (
	"math/rand"
	"sort"
	"time"
)

// RankedCandidate is one suggestion: a profile and its adjusted score.
type RankedCandidate struct {
	Profile Profile `json:"profile"`
	Score   float64 `json:"score"`
}

// rankSnapshot is the read-side state the ranker works from. The ranker is a
// pure function over this snapshot; it holds nothing between calls.
type rankSnapshot struct {
	Profiles  []Profile
	Swipes    []SwipeEvent
	Matches   []MatchPair
	LastShown map[string]time.Time
}

// rankCandidates builds the suggestion list for a requester.
//
// Pipeline: pre-filter (self, already-swiped, already-matched, optional
// campus restriction) -> similarity score -> diversity boost -> deterministic
// sort -> truncate to n. If nobody has any shared signal (best score 0), the
// zero-score fallback re-selects by region and least-recent exposure so the
// result is never empty while eligible candidates remain.
//
// An empty pre-filtered pool returns an empty list; that is the only
// "no suggestion" outcome.
//
// rng seeds the fallback tie-break; pass a fixed-seed source in tests, nil
// for the process-wide source.
func rankCandidates(requester Profile, snap rankSnapshot, n int, cfg MatchConfig, rng *rand.Rand, now time.Time) []RankedCandidate {
	if n <= 0 {
		return nil
	}

	me := normalizeCode(requester.Code)

	// Swipe history: any RIGHT excludes forever, a LEFT excludes until the
	// configured cooldown has passed since the most recent LEFT.
	rightSwiped := make(map[string]struct{})
	lastLeft := make(map[string]time.Time)
	for _, s := range snap.Swipes {
		if normalizeCode(s.Swiper) != me {
			continue
		}
		target := normalizeCode(s.Target)
		switch s.Direction {
		case SwipeRight:
			rightSwiped[target] = struct{}{}
		case SwipeLeft:
			if s.At.After(lastLeft[target]) {
				lastLeft[target] = s.At
			}
		}
	}

	matched := make(map[string]struct{})
	for _, m := range snap.Matches {
		a, b := normalizeCode(m.MemberA), normalizeCode(m.MemberB)
		if a == me {
			matched[b] = struct{}{}
		} else if b == me {
			matched[a] = struct{}{}
		}
	}

	byCode := make(map[string]Profile, len(snap.Profiles))
	for _, p := range snap.Profiles {
		byCode[normalizeCode(p.Code)] = p
	}

	// Interest tags already covered by the requester's current matches; a
	// candidate bringing a tag outside this set counts as diverse.
	partnerTags := make(map[string]struct{})
	for code := range matched {
		if p, ok := byCode[code]; ok {
			for _, t := range p.Interests {
				partnerTags[normalizeTag(t)] = struct{}{}
			}
		}
	}

	myCampus := normalizeTag(requester.Campus)
	var pool []Profile
	for _, p := range snap.Profiles {
		code := normalizeCode(p.Code)
		if code == me {
			continue
		}
		if _, ok := rightSwiped[code]; ok {
			continue
		}
		if at, ok := lastLeft[code]; ok {
			if cfg.LeftCooldown <= 0 || now.Sub(at) < cfg.LeftCooldown {
				continue
			}
		}
		if _, ok := matched[code]; ok {
			continue
		}
		if cfg.SameCampusOnly && normalizeTag(p.Campus) != myCampus {
			continue
		}
		pool = append(pool, p)
	}
	if len(pool) == 0 {
		return nil
	}

	ranked := make([]RankedCandidate, 0, len(pool))
	for _, p := range pool {
		score := similarityScore(requester, p, cfg)
		if score > 0 && isDiverse(requester, p, partnerTags) {
			score *= cfg.DiversityBoost
		}
		ranked = append(ranked, RankedCandidate{Profile: p, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].Profile.CreatedAt.Equal(ranked[j].Profile.CreatedAt) {
			return ranked[i].Profile.CreatedAt.Before(ranked[j].Profile.CreatedAt)
		}
		return normalizeCode(ranked[i].Profile.Code) < normalizeCode(ranked[j].Profile.Code)
	})

	if ranked[0].Score == 0 {
		return fallbackCandidates(requester, pool, snap.LastShown, n, cfg, rng)
	}

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// isDiverse is the diversity-boost predicate: a different campus, or an
// interest tag the requester's existing matches don't already cover.
func isDiverse(requester, candidate Profile, partnerTags map[string]struct{}) bool {
	cCampus := normalizeTag(candidate.Campus)
	if cCampus != "" && cCampus != normalizeTag(requester.Campus) {
		return true
	}
	for _, t := range candidate.Interests {
		if _, covered := partnerTags[normalizeTag(t)]; !covered {
			return true
		}
	}
	return false
}

// fallbackCandidates handles the all-zero-scores case: prefer same
// country/region, order by least recently surfaced (never-surfaced members
// first, oldest registration first among them), then randomize within the
// leading top-K window.
func fallbackCandidates(requester Profile, pool []Profile, lastShown map[string]time.Time, n int, cfg MatchConfig, rng *rand.Rand) []RankedCandidate {
	var shared []Profile
	for _, p := range pool {
		if sameRegion(requester.Country, p.Country, cfg.RegionGroups) {
			shared = append(shared, p)
		}
	}
	if len(shared) > 0 {
		pool = shared
	}

	sort.Slice(pool, func(i, j int) bool {
		si, okI := lastShown[normalizeCode(pool[i].Code)]
		sj, okJ := lastShown[normalizeCode(pool[j].Code)]
		if okI != okJ {
			return !okI
		}
		if okI && !si.Equal(sj) {
			return si.Before(sj)
		}
		if !pool[i].CreatedAt.Equal(pool[j].CreatedAt) {
			return pool[i].CreatedAt.Before(pool[j].CreatedAt)
		}
		return normalizeCode(pool[i].Code) < normalizeCode(pool[j].Code)
	})

	window := cfg.FallbackTopK
	if window > len(pool) {
		window = len(pool)
	}
	if window > 1 {
		shuffle := rand.Shuffle
		if rng != nil {
			shuffle = rng.Shuffle
		}
		shuffle(window, func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	if len(pool) > n {
		pool = pool[:n]
	}
	out := make([]RankedCandidate, len(pool))
	for i, p := range pool {
		out[i] = RankedCandidate{Profile: p, Score: 0}
	}
	return out
}
