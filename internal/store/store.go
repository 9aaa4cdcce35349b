// Package store persists normalized datasets and student profiles between
// runs, so the crowd-sourced sheet does not have to be re-fetched and
// re-cleaned for every question. The engine never touches this package; the
// cmds load rows from here and hand them over as plain values.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"grade-advisor/internal/domain"
)

// ErrNotFound is returned when a requested profile does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const schema = `
CREATE TABLE IF NOT EXISTS course_rows (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	course TEXT NOT NULL,
	class_average REAL,
	credits INTEGER,
	term TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_course_rows_course ON course_rows(course);
CREATE TABLE IF NOT EXISTS profiles (
	name TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceDataset swaps the stored dataset for the given rows in one
// transaction. Row order is preserved through the autoincrement id.
func (s *Store) ReplaceDataset(rows []domain.CourseRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM course_rows`); err != nil {
		return fmt.Errorf("store: clear dataset: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO course_rows (course, class_average, credits, term) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		var avg sql.NullFloat64
		if r.HasAverage {
			avg = sql.NullFloat64{Float64: r.ClassAverage, Valid: true}
		}
		var credits sql.NullInt64
		if r.HasCredits {
			credits = sql.NullInt64{Int64: int64(r.Credits), Valid: true}
		}
		if _, err := stmt.Exec(r.Course, avg, credits, r.Term); err != nil {
			return fmt.Errorf("store: insert %s: %w", r.Course, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// LoadDataset returns the stored rows in insertion order.
func (s *Store) LoadDataset() ([]domain.CourseRow, error) {
	rows, err := s.db.Query(`SELECT course, class_average, credits, term FROM course_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: load dataset: %w", err)
	}
	defer rows.Close()

	var out []domain.CourseRow
	for rows.Next() {
		var (
			r       domain.CourseRow
			avg     sql.NullFloat64
			credits sql.NullInt64
		)
		if err := rows.Scan(&r.Course, &avg, &credits, &r.Term); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		if avg.Valid {
			r.ClassAverage = avg.Float64
			r.HasAverage = true
		}
		if credits.Valid {
			r.Credits = int(credits.Int64)
			r.HasCredits = true
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate rows: %w", err)
	}
	return out, nil
}

// SaveProfile upserts a profile under its name.
func (s *Store) SaveProfile(p *domain.StudentProfile) error {
	if p.Name == "" {
		return fmt.Errorf("store: profile needs a name")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: encode profile: %w", err)
	}
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO profiles (name, payload) VALUES (?, ?)`, p.Name, string(payload)); err != nil {
		return fmt.Errorf("store: save profile %s: %w", p.Name, err)
	}
	return nil
}

// LoadProfile fetches a profile by name.
func (s *Store) LoadProfile(name string) (*domain.StudentProfile, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM profiles WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: profile %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load profile %s: %w", name, err)
	}

	p := &domain.StudentProfile{}
	if err := json.Unmarshal([]byte(payload), p); err != nil {
		return nil, fmt.Errorf("store: decode profile %s: %w", name, err)
	}
	return p, nil
}
