package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// postgresStore implements ProfileStore and InteractionLog on top of the
// shared tabular store. All driver failures surface as errStoreUnavailable.
type postgresStore struct {
	db *sql.DB
}

func newPostgresStore(db *sql.DB) *postgresStore {
	return &postgresStore{db: db}
}

// ensureSchema creates the tables on first run so a fresh database works
// without manual setup. The unique index on (member_a, member_b) is what
// makes AppendMatch an atomic check-then-append.
func (s *postgresStore) ensureSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS profiles (
			code         TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			campus       TEXT NOT NULL DEFAULT '',
			country      TEXT NOT NULL DEFAULT '',
			background   TEXT NOT NULL DEFAULT '',
			interests    JSONB NOT NULL DEFAULT '[]',
			contact_info TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS swipes (
			id        BIGSERIAL PRIMARY KEY,
			swiper    TEXT NOT NULL,
			target    TEXT NOT NULL,
			direction TEXT NOT NULL,
			at        TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS shown_events (
			id     BIGSERIAL PRIMARY KEY,
			viewer TEXT NOT NULL,
			shown  TEXT NOT NULL,
			at     TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS matches (
			member_a TEXT NOT NULL,
			member_b TEXT NOT NULL,
			at       TIMESTAMPTZ NOT NULL,
			UNIQUE (member_a, member_b)
		);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", errStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) Get(code string) (Profile, error) {
	var p Profile
	var interests []byte
	err := s.db.QueryRow(`
		SELECT code, name, campus, country, background, interests, contact_info, created_at
		FROM profiles WHERE code = $1
	`, normalizeCode(code)).Scan(
		&p.Code, &p.Name, &p.Campus, &p.Country, &p.Background, &interests, &p.ContactInfo, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return Profile{}, errNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	json.Unmarshal(interests, &p.Interests)
	return p, nil
}

func (s *postgresStore) GetAll() ([]Profile, error) {
	rows, err := s.db.Query(`
		SELECT code, name, campus, country, background, interests, contact_info, created_at
		FROM profiles ORDER BY created_at, code
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var interests []byte
		if err := rows.Scan(&p.Code, &p.Name, &p.Campus, &p.Country, &p.Background, &interests, &p.ContactInfo, &p.CreatedAt); err != nil {
			continue
		}
		json.Unmarshal(interests, &p.Interests)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return out, nil
}

func (s *postgresStore) Append(p Profile) error {
	interests, err := json.Marshal(p.Interests)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	res, err := s.db.Exec(`
		INSERT INTO profiles (code, name, campus, country, background, interests, contact_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING
	`, normalizeCode(p.Code), p.Name, p.Campus, p.Country, p.Background, interests, p.ContactInfo, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errDuplicateProfile
	}
	return nil
}

func (s *postgresStore) AppendSwipe(e SwipeEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO swipes (swiper, target, direction, at) VALUES ($1, $2, $3, $4)
	`, normalizeCode(e.Swiper), normalizeCode(e.Target), string(e.Direction), e.At)
	if err != nil {
		return fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) ScanSwipes(f SwipeFilter) ([]SwipeEvent, error) {
	query := `SELECT swiper, target, direction, at FROM swipes WHERE 1=1`
	var args []interface{}
	if f.Swiper != "" {
		args = append(args, normalizeCode(f.Swiper))
		query += fmt.Sprintf(" AND swiper = $%d", len(args))
	}
	if f.Target != "" {
		args = append(args, normalizeCode(f.Target))
		query += fmt.Sprintf(" AND target = $%d", len(args))
	}
	if f.Direction != "" {
		args = append(args, string(f.Direction))
		query += fmt.Sprintf(" AND direction = $%d", len(args))
	}
	query += " ORDER BY at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	defer rows.Close()

	var out []SwipeEvent
	for rows.Next() {
		var e SwipeEvent
		var dir string
		if err := rows.Scan(&e.Swiper, &e.Target, &dir, &e.At); err != nil {
			continue
		}
		e.Direction = SwipeDirection(dir)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return out, nil
}

func (s *postgresStore) AppendShown(e ShownEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO shown_events (viewer, shown, at) VALUES ($1, $2, $3)
	`, normalizeCode(e.Viewer), normalizeCode(e.Shown), e.At)
	if err != nil {
		return fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) LastShown(viewer string) (map[string]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT shown, MAX(at) FROM shown_events WHERE viewer = $1 GROUP BY shown
	`, normalizeCode(viewer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var shown string
		var at time.Time
		if err := rows.Scan(&shown, &at); err == nil {
			out[shown] = at
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return out, nil
}

func (s *postgresStore) AppendMatch(pair MatchPair) error {
	a, b := canonicalPair(pair.MemberA, pair.MemberB)
	_, err := s.db.Exec(`
		INSERT INTO matches (member_a, member_b, at) VALUES ($1, $2, $3)
		ON CONFLICT (member_a, member_b) DO NOTHING
	`, a, b, pair.At)
	if err != nil {
		return fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return nil
}

func (s *postgresStore) ScanMatches(code string) ([]MatchPair, error) {
	query := `SELECT member_a, member_b, at FROM matches`
	var args []interface{}
	if code != "" {
		query += ` WHERE member_a = $1 OR member_b = $1`
		args = append(args, normalizeCode(code))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	defer rows.Close()

	var out []MatchPair
	for rows.Next() {
		var m MatchPair
		if err := rows.Scan(&m.MemberA, &m.MemberB, &m.At); err == nil {
			out = append(out, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", errStoreUnavailable, err)
	}
	return out, nil
}
