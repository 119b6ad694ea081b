package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// --- Response helpers ---
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErrorFrom maps the core's error kinds onto HTTP statuses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, errDuplicateProfile):
		writeError(w, http.StatusConflict, "duplicate_profile")
	case errors.Is(err, errStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
		log.Println("store error:", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error")
		log.Println("unexpected error:", err)
	}
}
