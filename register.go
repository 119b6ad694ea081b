package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type registerRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Campus      string   `json:"campus" validate:"required,max=120"`
	Country     string   `json:"country" validate:"required,max=120"`
	Background  string   `json:"background" validate:"max=200"`
	Interests   []string `json:"interests" validate:"max=50,dive,max=80"`
	ContactInfo string   `json:"contact_info" validate:"required,max=200"`
}

// POST /register
// Creates a profile and returns the generated member code.
func registerHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := validate.Struct(req); err != nil {
			log.Println("registration rejected:", err)
			writeError(w, http.StatusBadRequest, "validation_failed")
			return
		}

		profile, err := app.Register(Profile{
			Name:        strings.TrimSpace(req.Name),
			Campus:      strings.TrimSpace(req.Campus),
			Country:     strings.TrimSpace(req.Country),
			Background:  strings.TrimSpace(req.Background),
			Interests:   req.Interests,
			ContactInfo: strings.TrimSpace(req.ContactInfo),
		})
		if err != nil {
			writeErrorFrom(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, profile)
	}
}
