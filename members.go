package main

import (
	"net/http"
	"strconv"
	"strings"
)

// A dispatcher router function for all /members/{code}/... requests
//
//	GET  /members/{code}                         profile lookup
//	GET  /members/{code}/suggestions?count=N     ranked candidates
//	GET  /members/{code}/matches                 confirmed matches
//	POST /members/{code}/swipes/{target}/right   accept
//	POST /members/{code}/swipes/{target}/left    decline
func membersDispatcher(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] != "members" {
			http.NotFound(w, r)
			return
		}

		if len(parts) == 2 {
			memberHandler(app).ServeHTTP(w, r)
			return
		}
		if len(parts) == 3 {
			switch parts[2] {
			case "suggestions":
				suggestionsHandler(app).ServeHTTP(w, r)
			case "matches":
				matchesHandler(app).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
			return
		}
		if len(parts) == 5 && parts[2] == "swipes" {
			swipeHandler(app).ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	}
}

// GET /members/{code}
func memberHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		profile, err := app.GetProfile(parts[1])
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

// GET /members/{code}/suggestions?count=N
func suggestionsHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

		count := 0
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid_count")
				return
			}
			count = n
		}

		suggestions, err := app.RankCandidates(parts[1], count)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		if suggestions == nil {
			suggestions = []RankedCandidate{}
		}
		writeJSON(w, http.StatusOK, map[string][]RankedCandidate{"suggestions": suggestions})
	}
}

// POST /members/{code}/swipes/{target}/{right|left}
func swipeHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

		direction, err := parseDirection(parts[4])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_direction")
			return
		}
		result, err := app.RecordSwipe(parts[1], parts[3], direction)
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GET /members/{code}/matches
func matchesHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

		matches, err := app.ListMatches(parts[1])
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		if matches == nil {
			matches = []MatchEntry{}
		}
		writeJSON(w, http.StatusOK, map[string][]MatchEntry{"matches": matches})
	}
}
