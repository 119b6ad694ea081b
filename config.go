package main

import (
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// MatchConfig carries the tunable parameters of the similarity engine and
// the candidate ranker. Weights are configured, never derived.
type MatchConfig struct {
	InterestWeight   float64
	BackgroundWeight float64
	CountryWeight    float64

	// Score multiplier for candidates satisfying the diversity predicate.
	DiversityBoost float64

	// LEFT swipes older than this re-enter the candidate pool. Zero means a
	// LEFT excludes the candidate forever.
	LeftCooldown time.Duration

	// Restrict suggestions to the requester's campus.
	SameCampusOnly bool

	// Country (normalized) -> region group name. Countries in the same group
	// count as a country match.
	RegionGroups map[string]string

	// Size of the randomized tie-break window in the zero-score fallback.
	FallbackTopK int

	// Suggestions returned when the request does not say how many.
	DefaultSuggestions int
}

func defaultMatchConfig() MatchConfig {
	return MatchConfig{
		InterestWeight:     0.5,
		BackgroundWeight:   0.3,
		CountryWeight:      0.2,
		DiversityBoost:     1.1,
		FallbackTopK:       3,
		DefaultSuggestions: 10,
	}
}

// loadMatchConfig reads overrides from the environment, falling back to the
// defaults with a warning on anything unparsable.
func loadMatchConfig() MatchConfig {
	cfg := defaultMatchConfig()

	envFloat("MATCH_WEIGHT_INTERESTS", &cfg.InterestWeight)
	envFloat("MATCH_WEIGHT_BACKGROUND", &cfg.BackgroundWeight)
	envFloat("MATCH_WEIGHT_COUNTRY", &cfg.CountryWeight)
	envFloat("MATCH_DIVERSITY_BOOST", &cfg.DiversityBoost)
	envInt("MATCH_FALLBACK_TOP_K", &cfg.FallbackTopK)
	envInt("MATCH_DEFAULT_SUGGESTIONS", &cfg.DefaultSuggestions)

	if v := os.Getenv("MATCH_LEFT_COOLDOWN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Println("Warning: invalid MATCH_LEFT_COOLDOWN, ignoring:", v)
		} else {
			cfg.LeftCooldown = d
		}
	}
	if v := os.Getenv("MATCH_SAME_CAMPUS_ONLY"); v != "" {
		cfg.SameCampusOnly = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("MATCH_REGION_GROUPS"); v != "" {
		cfg.RegionGroups = parseRegionGroups(v)
	}

	sum := cfg.InterestWeight + cfg.BackgroundWeight + cfg.CountryWeight
	if math.Abs(sum-1.0) > 1e-9 {
		log.Printf("Warning: similarity weights sum to %.3f, not 1.0", sum)
	}
	return cfg
}

// parseRegionGroups parses "oceania=australia,new zealand;asia=india,sri lanka"
// into a country -> group lookup.
func parseRegionGroups(raw string) map[string]string {
	groups := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		name, members, ok := strings.Cut(part, "=")
		if !ok {
			log.Println("Warning: skipping malformed region group:", part)
			continue
		}
		name = normalizeTag(name)
		for _, country := range strings.Split(members, ",") {
			if c := normalizeTag(country); c != "" {
				groups[c] = name
			}
		}
	}
	return groups
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s, ignoring: %s", key, v)
		return
	}
	*dst = f
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s, ignoring: %s", key, v)
		return
	}
	*dst = n
}
