package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"grade-advisor/internal/domain"
)

// snapshotRow is the JSON shape of one normalized row. Absent values are
// omitted rather than encoded as zeros.
type snapshotRow struct {
	Course       string   `json:"course"`
	ClassAverage *float64 `json:"class_average,omitempty"`
	Credits      *int     `json:"credits,omitempty"`
	Term         string   `json:"term,omitempty"`
}

// WriteSnapshot writes the rows as a JSON snapshot. Snapshots are the
// cheap way to pass a cleaned dataset between cmds without a database file.
func WriteSnapshot(path string, rows []domain.CourseRow) error {
	out := make([]snapshotRow, 0, len(rows))
	for _, r := range rows {
		sr := snapshotRow{Course: r.Course, Term: r.Term}
		if r.HasAverage {
			avg := r.ClassAverage
			sr.ClassAverage = &avg
		}
		if r.HasCredits {
			credits := r.Credits
			sr.Credits = &credits
		}
		out = append(out, sr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads rows from a JSON snapshot written by WriteSnapshot.
func ReadSnapshot(path string) ([]domain.CourseRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read snapshot: %w", err)
	}

	var in []snapshotRow
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %s: %w", path, err)
	}

	rows := make([]domain.CourseRow, 0, len(in))
	for _, sr := range in {
		r := domain.CourseRow{Course: sr.Course, Term: sr.Term}
		if sr.ClassAverage != nil {
			r.ClassAverage = *sr.ClassAverage
			r.HasAverage = true
		}
		if sr.Credits != nil {
			r.Credits = *sr.Credits
			r.HasCredits = true
		}
		rows = append(rows, r)
	}
	return rows, nil
}
