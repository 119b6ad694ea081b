package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := loadMatchConfig()
	profiles, events := openStores()
	app := newApp(profiles, events, cfg)

	mux := http.NewServeMux()

	mux.Handle("/register", registerHandler(app))
	mux.Handle("/members/", membersDispatcher(app))

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting YoobeeConnect backend on port " + port + "...")
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

// openStores picks the backing store: Postgres when DATABASE_URL is set,
// otherwise the in-memory store for local development.
func openStores() (ProfileStore, InteractionLog) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Println("Warning: DATABASE_URL not set, using in-memory store (data is lost on restart)")
		m := newMemoryStore()
		return m, m
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Error connecting to the database:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot reach the database:", err)
	}
	store := newPostgresStore(db)
	if err := store.ensureSchema(); err != nil {
		log.Fatal("Error preparing database schema:", err)
	}
	log.Println("Database connection established successfully")
	return store, store
}
