// Package schema turns raw parsed records into the normalized dataset the
// advisor works on. Column names in the source sheet vary by contributor, so
// the course column is inferred from a candidate list and the grade, credit
// and term columns by substring match. Bad cells are normalized to absence
// or the row is dropped; only a missing course column is fatal.
package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"grade-advisor/internal/domain"
	"grade-advisor/internal/ingest"
)

// ErrNoCourseColumn marks a dataset whose header has no recognizable course
// code column. Check with errors.Is; the concrete *InferenceError lists the
// columns that were available.
var ErrNoCourseColumn = errors.New("no course code column")

// InferenceError reports the header names seen when inference failed.
type InferenceError struct {
	Columns []string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("schema: no course code column among [%s]", strings.Join(e.Columns, ", "))
}

func (e *InferenceError) Unwrap() error { return ErrNoCourseColumn }

// courseColumnCandidates are matched case-insensitively, in order, against
// the header. First hit wins.
var courseColumnCandidates = []string{"course", "class", "course code", "course_code"}

// invalidMarkers flag spreadsheet corruption that survives cell-level
// cleaning, e.g. a broken cross-sheet reference pasted into a code cell.
// Matched case-insensitively against the uppercased course code.
var invalidMarkers = []string{"#REF!", "NAN"}

// Normalize converts a raw table into a Dataset. Rows without a course code
// and rows carrying an invalid-data marker are dropped; unparseable grade or
// credit cells become absent values on an otherwise retained row.
func Normalize(t *ingest.Table) (*Dataset, error) {
	courseIdx := findCourseColumn(t.Header)
	if courseIdx < 0 {
		return nil, &InferenceError{Columns: append([]string(nil), t.Header...)}
	}
	gradeIdx := findColumnContaining(t.Header, "ave", "grade")
	creditsIdx := findColumnContaining(t.Header, "credit")
	termIdx := findColumnContaining(t.Header, "term")

	rows := make([]domain.CourseRow, 0, len(t.Rows))
	for _, rec := range t.Rows {
		code := strings.ToUpper(strings.TrimSpace(cell(rec, courseIdx)))
		if code == "" || hasInvalidMarker(code) {
			continue
		}

		row := domain.CourseRow{Course: code}
		if gradeIdx >= 0 {
			if v, ok := parseFloatCell(cell(rec, gradeIdx)); ok {
				row.ClassAverage = v
				row.HasAverage = true
			}
		}
		if creditsIdx >= 0 {
			if v, ok := parseFloatCell(cell(rec, creditsIdx)); ok {
				row.Credits = int(v)
				row.HasCredits = true
			}
		}
		if termIdx >= 0 {
			row.Term = strings.TrimSpace(cell(rec, termIdx))
		}
		rows = append(rows, row)
	}
	return NewDataset(rows), nil
}

func findCourseColumn(header []string) int {
	for _, candidate := range courseColumnCandidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

// findColumnContaining returns the first header whose name contains any of
// the substrings, case-insensitively, or -1.
func findColumnContaining(header []string, substrings ...string) int {
	for i, name := range header {
		lower := strings.ToLower(name)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return -1
}

func hasInvalidMarker(code string) bool {
	for _, marker := range invalidMarkers {
		if strings.Contains(code, marker) {
			return true
		}
	}
	return false
}

// cell tolerates short rows; the CSV strategies don't guarantee every row
// matches the header width.
func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// parseFloatCell coerces a cell to a finite number. Anything else, including
// explicit "NaN" text, counts as absent.
func parseFloatCell(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
