package main

// similarityScore computes the weighted similarity between two profiles,
// in [0,1] when the configured weights sum to 1. Symmetric in its default
// form. Missing interests, background or country simply contribute nothing;
// incomplete profiles must never block candidate generation.
func similarityScore(u, c Profile, cfg MatchConfig) float64 {
	total := cfg.InterestWeight * jaccard(u.Interests, c.Interests)

	if b := normalizeTag(u.Background); b != "" && b == normalizeTag(c.Background) {
		total += cfg.BackgroundWeight
	}
	if sameRegion(u.Country, c.Country, cfg.RegionGroups) {
		total += cfg.CountryWeight
	}
	return total
}

// jaccard is |a ∩ b| / |a ∪ b| over normalized tag sets, 0 when both are
// empty.
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		if n := normalizeTag(t); n != "" {
			setA[n] = struct{}{}
		}
	}
	union := len(setA)
	shared := 0
	seenB := make(map[string]struct{}, len(b))
	for _, t := range b {
		n := normalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seenB[n]; dup {
			continue
		}
		seenB[n] = struct{}{}
		if _, ok := setA[n]; ok {
			shared++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// sameRegion reports whether two countries match directly or through a
// configured region group.
func sameRegion(a, b string, groups map[string]string) bool {
	na, nb := normalizeTag(a), normalizeTag(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	ga, okA := groups[na]
	gb, okB := groups[nb]
	return okA && okB && ga == gb
}
