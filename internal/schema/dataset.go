package schema

import (
	"sort"
	"strings"

	"grade-advisor/internal/domain"
)

// Dataset is the normalized grade history for one ingestion session. It is
// immutable after construction; lookups are exact matches on the uppercase
// course code. Duplicate codes (several terms of the same course) stay as
// separate rows.
type Dataset struct {
	rows     []domain.CourseRow
	byCourse map[string][]int
	order    []string // unique codes in first-seen order
}

// NewDataset indexes normalized rows. The slice is owned by the dataset
// afterwards and must not be mutated by the caller.
func NewDataset(rows []domain.CourseRow) *Dataset {
	ds := &Dataset{
		rows:     rows,
		byCourse: make(map[string][]int),
	}
	for i, r := range rows {
		if _, seen := ds.byCourse[r.Course]; !seen {
			ds.order = append(ds.order, r.Course)
		}
		ds.byCourse[r.Course] = append(ds.byCourse[r.Course], i)
	}
	return ds
}

// Len returns the number of retained rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns all rows in original order. Callers must treat the slice as
// read-only.
func (d *Dataset) Rows() []domain.CourseRow { return d.rows }

// Courses returns the unique course codes in first-seen order.
func (d *Dataset) Courses() []string {
	return append([]string(nil), d.order...)
}

// ByCourse returns every row for the code, matching case-insensitively.
func (d *Dataset) ByCourse(code string) []domain.CourseRow {
	idxs := d.byCourse[strings.ToUpper(strings.TrimSpace(code))]
	if len(idxs) == 0 {
		return nil
	}
	rows := make([]domain.CourseRow, 0, len(idxs))
	for _, i := range idxs {
		rows = append(rows, d.rows[i])
	}
	return rows
}

// AverageFor returns the mean class average across all rows for the code.
// Rows without a recorded average are excluded from the mean; the second
// return is false when no row contributes.
func (d *Dataset) AverageFor(code string) (float64, bool) {
	sum, n := 0.0, 0
	for _, i := range d.byCourse[strings.ToUpper(strings.TrimSpace(code))] {
		if r := d.rows[i]; r.HasAverage {
			sum += r.ClassAverage
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Stats summarizes the dataset for reporting.
type Stats struct {
	Records       int
	UniqueCourses int
	Graded        int // rows with a recorded average
	Mean          float64
	Median        float64
	Min           float64
	Max           float64
}

// Stats computes record counts and grade distribution over the rows that
// carry an average.
func (d *Dataset) Stats() Stats {
	st := Stats{
		Records:       len(d.rows),
		UniqueCourses: len(d.order),
	}

	var grades []float64
	for _, r := range d.rows {
		if r.HasAverage {
			grades = append(grades, r.ClassAverage)
		}
	}
	st.Graded = len(grades)
	if len(grades) == 0 {
		return st
	}

	sort.Float64s(grades)
	st.Min = grades[0]
	st.Max = grades[len(grades)-1]

	sum := 0.0
	for _, g := range grades {
		sum += g
	}
	st.Mean = sum / float64(len(grades))

	mid := len(grades) / 2
	if len(grades)%2 == 0 {
		st.Median = (grades[mid-1] + grades[mid]) / 2
	} else {
		st.Median = grades[mid]
	}
	return st
}

// SubjectCount is the number of rows filed under one subject prefix.
type SubjectCount struct {
	Subject string
	Rows    int
}

// SubjectCounts returns per-subject row counts, most rows first, ties in
// lexical order.
func (d *Dataset) SubjectCounts() []SubjectCount {
	counts := make(map[string]int)
	for _, r := range d.rows {
		counts[r.Subject()]++
	}

	out := make([]SubjectCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, SubjectCount{Subject: s, Rows: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rows != out[j].Rows {
			return out[i].Rows > out[j].Rows
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}

// CourseSummary aggregates every row of one course for subject search.
type CourseSummary struct {
	Course       string
	ClassAverage float64 // mean across rows with an average
	HasAverage   bool
	Credits      int // first recorded value
	HasCredits   bool
}

// CoursesBySubject returns one summary per course whose code starts with
// the prefix, in first-seen order.
func (d *Dataset) CoursesBySubject(prefix string) []CourseSummary {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var out []CourseSummary
	for _, code := range d.order {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		s := CourseSummary{Course: code}
		if avg, ok := d.AverageFor(code); ok {
			s.ClassAverage = avg
			s.HasAverage = true
		}
		for _, i := range d.byCourse[code] {
			if r := d.rows[i]; r.HasCredits {
				s.Credits = r.Credits
				s.HasCredits = true
				break
			}
		}
		out = append(out, s)
	}
	return out
}
